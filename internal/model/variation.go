package model

import "github.com/google/uuid"

// Variation is an attribute axis for products in a category, e.g. "colour".
type Variation struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
}

// VariationOption is a concrete value on a variation axis, e.g. "red".
type VariationOption struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Value       string     `json:"value" db:"value"`
	VariationID *uuid.UUID `json:"variationId,omitempty" db:"variation_id"`
}

// CreateVariationRequest is the payload for POST /api/variation.
type CreateVariationRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required,uuid"`
}

// CreateVariationOptionRequest is the payload for POST /api/variation-option.
type CreateVariationOptionRequest struct {
	Value       string `json:"value" validate:"required"`
	VariationID string `json:"variationId" validate:"required,uuid"`
}
