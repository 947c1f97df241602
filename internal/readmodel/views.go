package readmodel

import (
	"time"

	"github.com/google/uuid"

	"storefront/internal/query"
)

// BrandRef is a brand resolved into a parent shape.
type BrandRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryRef is a category resolved into a parent shape.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CategoryItemRef is a category item with its own category resolved
// transitively in the same pass.
type CategoryItemRef struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Slug     string       `json:"slug"`
	Category *CategoryRef `json:"category"`
}

// VariationRef is a variation axis resolved into an option.
type VariationRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OptionRef is a variation option with its variation resolved.
type OptionRef struct {
	ID        uuid.UUID     `json:"id"`
	Value     string        `json:"value"`
	Variation *VariationRef `json:"variation"`
}

// ProductView is a product with brand and category item (and that item's
// category) resolved. Unmatched references are null, never empty objects.
type ProductView struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description,omitempty"`
	Price        float64          `json:"price"`
	Images       []string         `json:"images"`
	Sold         int              `json:"sold"`
	TotalRating  float64          `json:"totalRating"`
	Brand        *BrandRef        `json:"brand"`
	CategoryItem *CategoryItemRef `json:"categoryItem"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ProductRef is the product slice nested inside a resolved detail:
// ProductDetail -> Product -> Brand / CategoryItem -> Category, three
// levels deep in one pass.
type ProductRef struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Price        float64          `json:"price"`
	TotalRating  float64          `json:"totalRating"`
	Brand        *BrandRef        `json:"brand"`
	CategoryItem *CategoryItemRef `json:"categoryItem"`
}

// DetailRef is a product detail resolved into a cart or order line.
type DetailRef struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Image     string      `json:"image,omitempty"`
	Color     string      `json:"color,omitempty"`
	Size      string      `json:"size,omitempty"`
	Price     float64     `json:"price"`
	Inventory int         `json:"inventory"`
	Product   *ProductRef `json:"product"`
}

// DetailView is the standalone detail read model.
type DetailView struct {
	DetailRef
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLineView is one fully resolved cart line. Lines whose detail or
// option references no longer resolve are dropped during assembly rather
// than surfaced as errors.
type CartLineView struct {
	ID            uuid.UUID   `json:"id"`
	Quantity      int         `json:"quantity"`
	ProductDetail *DetailRef  `json:"productDetail"`
	Options       []OptionRef `json:"variationOptions"`
}

// OrderLineView is one resolved order line. Dangling references stay null.
type OrderLineView struct {
	Quantity        int        `json:"quantity"`
	ProductDetail   *DetailRef `json:"productDetail"`
	VariationOption *OptionRef `json:"variationOption"`
}

// OrderView is an order with all line details resolved.
type OrderView struct {
	ID        uuid.UUID       `json:"id"`
	OrderBy   uuid.UUID       `json:"orderBy"`
	Status    string          `json:"status"`
	Lines     []OrderLineView `json:"lines"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListing exposes the product listing's filterable and sortable
// fields to the query normalizer.
var ProductListing = query.Definition{
	DefaultPageSize: 10,
	Columns: map[string]string{
		"price":       "p.price",
		"brand":       "p.brand_id",
		"totalRating": "p.total_rating",
		"productName": "p.name",
		"name":        "p.name",
		"slug":        "p.slug",
		"sold":        "p.sold",
		"ctime":       "p.created_at",
		"createdAt":   "p.created_at",
	},
}

// OrderListing exposes the order listing's fields.
var OrderListing = query.Definition{
	DefaultPageSize: 5,
	Columns: map[string]string{
		"status":    "o.status",
		"ctime":     "o.created_at",
		"createdAt": "o.created_at",
	},
}
