package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront/internal/model"
	"storefront/internal/query"
)

// UserRepository defines user account data access.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*model.User, error)
	GetByResetHash(ctx context.Context, hash string) (*model.User, error)
	List(ctx context.Context, opts query.Options) ([]model.User, int, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CartRepository defines cart line data access. Upsert is a single atomic
// statement: a line matching (user, detail, ordered option list) has its
// quantity incremented, anything else appends a new line.
type CartRepository interface {
	Upsert(ctx context.Context, line *model.CartLine) error
	Delete(ctx context.Context, userID, lineID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ProductRepository defines product data access.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	SetImages(ctx context.Context, id uuid.UUID, images []string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// UpsertRating stores one rating per (product, user) pair, replacing
	// the star value on resubmission, and recomputes the product's total
	// rating in the same transaction. It returns the new total.
	UpsertRating(ctx context.Context, rating *model.Rating) (float64, error)
}

// ProductDetailRepository defines product detail data access.
type ProductDetailRepository interface {
	Create(ctx context.Context, d *model.ProductDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error)
	Update(ctx context.Context, d *model.ProductDetail) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ConfigurationRepository defines product configuration data access. The
// option set is kept in sorted canonical form so the per-detail uniqueness
// invariant is enforced by the store itself.
type ConfigurationRepository interface {
	Create(ctx context.Context, c *model.ProductConfiguration) error
	ListForDetail(ctx context.Context, detailID uuid.UUID) ([]model.ProductConfiguration, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CatalogRepository defines category, category item and brand data access.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context, opts query.Options) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	CreateCategoryItem(ctx context.Context, item *model.CategoryItem) error
	GetCategoryItem(ctx context.Context, id uuid.UUID) (*model.CategoryItem, error)
	ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error)
	DeleteCategoryItem(ctx context.Context, id uuid.UUID) (bool, error)
	CategoryItemExists(ctx context.Context, id uuid.UUID) (bool, error)

	CreateBrand(ctx context.Context, b *model.Brand) error
	ListBrands(ctx context.Context) ([]model.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) (bool, error)
	BrandExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// VariationRepository defines variation axis and option data access.
type VariationRepository interface {
	CreateVariation(ctx context.Context, v *model.Variation) error
	ListVariations(ctx context.Context, categoryID *uuid.UUID) ([]model.Variation, error)
	DeleteVariation(ctx context.Context, id uuid.UUID) (bool, error)
	VariationExists(ctx context.Context, id uuid.UUID) (bool, error)

	CreateOption(ctx context.Context, o *model.VariationOption) error
	ListOptions(ctx context.Context, variationID *uuid.UUID) ([]model.VariationOption, error)
	DeleteOption(ctx context.Context, id uuid.UUID) (bool, error)

	// OptionsExist reports whether every given option ID exists.
	OptionsExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

// OrderRepository defines order data access.
type OrderRepository interface {
	// CreateWithLines persists the order and its lines in one transaction.
	CreateWithLines(ctx context.Context, order *model.Order, lines []model.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error
}

// BlogRepository defines blog content data access.
type BlogRepository interface {
	Create(ctx context.Context, b *model.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context, opts query.Options) ([]model.Blog, int, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBlogRequest) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// React applies the idempotent, mutually exclusive toggle: the same
	// reaction twice removes it, the opposite reaction replaces it. It
	// returns the resulting like and dislike counts.
	React(ctx context.Context, blogID, userID uuid.UUID, kind string) (likes, dislikes int, err error)

	CreateCategory(ctx context.Context, c *model.BlogCategory) error
	ListCategories(ctx context.Context) ([]model.BlogCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)
}

// CouponRepository defines coupon data access.
type CouponRepository interface {
	Create(ctx context.Context, c *model.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	List(ctx context.Context, opts query.Options) ([]model.Coupon, int, error)
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Listing definitions for the plain-table listing endpoints. Column
// references match the FROM clauses of the corresponding List methods.
var (
	UserListing = query.Definition{
		Columns: map[string]string{
			"email":   "email",
			"name":    "name",
			"role":    "role",
			"blocked": "blocked",
			"ctime":   "created_at",
		},
		DefaultPageSize: 10,
	}

	CategoryListing = query.Definition{
		Columns: map[string]string{
			"name":  "name",
			"slug":  "slug",
			"ctime": "created_at",
		},
		DefaultPageSize: 10,
	}

	BlogListing = query.Definition{
		Columns: map[string]string{
			"title": "b.title",
			"views": "b.views",
			"ctime": "b.created_at",
		},
		DefaultPageSize: 10,
	}

	CouponListing = query.Definition{
		Columns: map[string]string{
			"name":   "c.name",
			"expiry": "c.expiry",
			"ctime":  "c.created_at",
		},
		DefaultPageSize: 10,
	}
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
