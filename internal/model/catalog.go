package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level catalogue grouping.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Thumbnail string    `json:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryItem is a second-level grouping under a category. Its name is
// unique across the whole table.
type CategoryItem struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Slug       string     `json:"slug" db:"slug"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// Brand is a product manufacturer.
type Brand struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateCategoryRequest is the non-file portion of a category create.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCategoryItemRequest is the payload for POST /api/category-item.
type CreateCategoryItemRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required,uuid"`
}

// CreateBrandRequest is the payload for POST /api/brand.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required"`
}
