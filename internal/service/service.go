package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/readmodel"
)

// TokenPair is the credential pair issued at login and refresh. The refresh
// token also lives on the user row so it can be revoked.
type TokenPair struct {
	Access  string
	Refresh string
}

// Claims is the verified identity carried by an access token.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// Upload is one incoming file from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// AuthService defines account lifecycle and token operations.
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues a token pair. Unknown email and
	// wrong password are reported as distinct domain errors.
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, TokenPair, error)

	// Refresh rotates the token pair for the holder of a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)

	// Logout revokes the stored refresh token. Unknown tokens are a no-op.
	Logout(ctx context.Context, refreshToken string) error

	// ForgotPassword issues a reset token and mails it to the user.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets the new password.
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error

	// VerifyAccess parses and verifies an access token.
	VerifyAccess(token string) (*Claims, error)
}

// UserService defines profile and account administration operations.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, file Upload) (string, error)
	List(ctx context.Context, opts query.Options) ([]model.User, int, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService defines cart operations for the current user.
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) ([]readmodel.CartLineView, error)
	Add(ctx context.Context, userID uuid.UUID, req *model.AddCartLineRequest) error
	Remove(ctx context.Context, userID, lineID uuid.UUID) error
}

// ProductService defines product, detail and configuration management.
type ProductService interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductView, error)
	List(ctx context.Context, opts query.Options) ([]readmodel.ProductView, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImages(ctx context.Context, id uuid.UUID, files []Upload) ([]string, error)

	// Rate stores the caller's star rating and returns the recomputed
	// product total.
	Rate(ctx context.Context, productID, userID uuid.UUID, req *model.RateProductRequest) (float64, error)

	CreateDetail(ctx context.Context, req *model.CreateProductDetailRequest) (*model.ProductDetail, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*readmodel.DetailView, error)
	UpdateDetail(ctx context.Context, d *model.ProductDetail) error
	DeleteDetail(ctx context.Context, id uuid.UUID) error

	CreateConfiguration(ctx context.Context, req *model.CreateConfigurationRequest) (*model.ProductConfiguration, error)
	ListConfigurations(ctx context.Context, detailID uuid.UUID) ([]model.ProductConfiguration, error)
	DeleteConfiguration(ctx context.Context, id uuid.UUID) error
}

// CatalogService defines category, category item and brand management.
type CatalogService interface {
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest, thumbnail *Upload) (*model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context, opts query.Options) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateCategoryItem(ctx context.Context, req *model.CreateCategoryItemRequest) (*model.CategoryItem, error)
	ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error)
	DeleteCategoryItem(ctx context.Context, id uuid.UUID) error

	CreateBrand(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
}

// VariationService defines variation axis and option management.
type VariationService interface {
	CreateVariation(ctx context.Context, req *model.CreateVariationRequest) (*model.Variation, error)
	ListVariations(ctx context.Context, categoryID *uuid.UUID) ([]model.Variation, error)
	DeleteVariation(ctx context.Context, id uuid.UUID) error

	CreateOption(ctx context.Context, req *model.CreateVariationOptionRequest) (*model.VariationOption, error)
	ListOptions(ctx context.Context, variationID *uuid.UUID) ([]model.VariationOption, error)
	DeleteOption(ctx context.Context, id uuid.UUID) error
}

// OrderService defines checkout and order management.
type OrderService interface {
	// Checkout persists the order with its lines, creates a payment session
	// and returns the session id.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	ListForUser(ctx context.Context, userID uuid.UUID, opts query.Options) ([]readmodel.OrderView, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// BlogService defines blog content operations.
type BlogService interface {
	Create(ctx context.Context, authorID uuid.UUID, req *model.CreateBlogRequest) (*model.Blog, error)

	// View returns the blog after counting the view.
	View(ctx context.Context, id uuid.UUID) (*model.Blog, error)

	List(ctx context.Context, opts query.Options) ([]model.Blog, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBlogRequest) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// React toggles the caller's like or dislike and returns the resulting
	// counts.
	React(ctx context.Context, blogID, userID uuid.UUID, kind string) (likes, dislikes int, err error)

	CreateCategory(ctx context.Context, req *model.CreateBlogCategoryRequest) (*model.BlogCategory, error)
	ListCategories(ctx context.Context) ([]model.BlogCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CouponService defines coupon management.
type CouponService interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	List(ctx context.Context, opts query.Options) ([]model.Coupon, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CreateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
