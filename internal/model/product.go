package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable product in the catalogue. Brand and category
// item are reference-by-ID; the readmodel package resolves them at read time.
type Product struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Slug           string     `json:"slug" db:"slug"`
	Description    string     `json:"description,omitempty" db:"description"`
	Price          float64    `json:"price" db:"price"`
	BrandID        *uuid.UUID `json:"brandId,omitempty" db:"brand_id"`
	CategoryItemID *uuid.UUID `json:"categoryItemId,omitempty" db:"category_item_id"`
	Images         []string   `json:"images" db:"images"`
	Sold           int        `json:"sold" db:"sold"`
	TotalRating    float64    `json:"totalRating" db:"total_rating"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// Rating is one user's star rating of a product. One row per
// (product, user) pair; resubmitting replaces the star value.
type Rating struct {
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Star      int       `json:"star" db:"star"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProductDetail is a purchasable variant row of a product (colour/size/own
// price and inventory). Cart and order lines reference details, not products.
type ProductDetail struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Image     string    `json:"image,omitempty" db:"image"`
	Color     string    `json:"color,omitempty" db:"color"`
	Size      string    `json:"size,omitempty" db:"size"`
	Price     float64   `json:"price" db:"price"`
	Inventory int       `json:"inventory" db:"inventory"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductConfiguration binds a product detail to a combination of variation
// options, e.g. "red / size M". The option set is unique per detail; the
// repository keeps OptionIDs sorted so equality is set equality.
type ProductConfiguration struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	ProductDetailID uuid.UUID   `json:"productDetailId" db:"product_detail_id"`
	OptionIDs       []uuid.UUID `json:"variationOptionIds" db:"variation_option_ids"`
}

// CreateProductRequest is the payload for POST /api/product.
type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" validate:"gte=0"`
	BrandID        string  `json:"brandId" validate:"required,uuid"`
	CategoryItemID string  `json:"categoryItemId" validate:"required,uuid"`
}

// UpdateProductRequest carries a partial-merge product update.
type UpdateProductRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	BrandID        *string  `json:"brandId,omitempty" validate:"omitempty,uuid"`
	CategoryItemID *string  `json:"categoryItemId,omitempty" validate:"omitempty,uuid"`
}

// RateProductRequest is the payload for PUT /api/product/{id}/rating.
type RateProductRequest struct {
	Star    int    `json:"star" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateProductDetailRequest is the payload for POST /api/product-detail.
type CreateProductDetailRequest struct {
	Name      string  `json:"name" validate:"required"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Price     float64 `json:"price" validate:"gte=0"`
	Inventory int     `json:"inventory" validate:"gte=0"`
	ProductID string  `json:"productId" validate:"required,uuid"`
}

// CreateConfigurationRequest is the payload for POST /api/product-configuration.
type CreateConfigurationRequest struct {
	ProductDetailID    string   `json:"productDetailId" validate:"required,uuid"`
	VariationOptionIDs []string `json:"variationOptionIds" validate:"required,min=1,dive,uuid"`
}
