package model

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a discount voucher with an expiry date.
type Coupon struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Discount  float64   `json:"discount" db:"discount"`
	Expiry    time.Time `json:"expiry" db:"expiry"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateCouponRequest is the payload for POST /api/coupon.
type CreateCouponRequest struct {
	Name     string    `json:"name" validate:"required"`
	Discount float64   `json:"discount" validate:"required,gt=0"`
	Expiry   time.Time `json:"expiry" validate:"required"`
}
