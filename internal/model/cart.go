package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one entry in a user's cart. A line is identified by the pair
// (product detail, ordered variation-option list); adding the same pair
// again increments quantity instead of appending a second line.
type CartLine struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	UserID          uuid.UUID   `json:"-" db:"user_id"`
	ProductDetailID uuid.UUID   `json:"productDetailId" db:"product_detail_id"`
	OptionIDs       []uuid.UUID `json:"variationOptionIds" db:"variation_option_ids"`
	Quantity        int         `json:"quantity" db:"quantity"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}

// AddCartLineRequest is the payload for POST /api/user/cart.
type AddCartLineRequest struct {
	ProductDetailID    string   `json:"productDetailId" validate:"required,uuid"`
	VariationOptionIDs []string `json:"variationOptionIds" validate:"dive,uuid"`
	Quantity           int      `json:"quantity" validate:"required,gt=0"`
}
