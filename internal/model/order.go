package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Transitions are deliberately unrestricted: an update may
// set any status from any other.
const (
	StatusPending          = "Pending"
	StatusWaitingDelivery  = "Waiting Delivering"
	StatusDelivering       = "Delivering"
	StatusDone             = "Done"
	StatusCancel           = "Cancel"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusWaitingDelivery, StatusDelivering, StatusDone, StatusCancel:
		return true
	}
	return false
}

// Order represents a customer order.
type Order struct {
	ID               uuid.UUID `json:"id" db:"id"`
	OrderBy          uuid.UUID `json:"orderBy" db:"order_by"`
	Status           string    `json:"status" db:"status"`
	PaymentSessionID *string   `json:"paymentSessionId,omitempty" db:"payment_session_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderLine is a line item in an order.
type OrderLine struct {
	ID                uuid.UUID  `json:"-" db:"id"`
	OrderID           uuid.UUID  `json:"-" db:"order_id"`
	ProductDetailID   uuid.UUID  `json:"productDetailId" db:"product_detail_id"`
	Quantity          int        `json:"quantity" db:"quantity"`
	VariationOptionID *uuid.UUID `json:"variationOptionId,omitempty" db:"variation_option_id"`
}

// CheckoutRequest is the payload for POST /api/order/checkout.
type CheckoutRequest struct {
	Lines []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CheckoutLineRequest is a single line in a checkout request.
type CheckoutLineRequest struct {
	ProductDetailID   string `json:"productDetailId" validate:"required,uuid"`
	Quantity          int    `json:"quantity" validate:"required,gt=0"`
	VariationOptionID string `json:"variationOptionId" validate:"omitempty,uuid"`
}

// CheckoutResponse is returned once the order is persisted and a payment
// session has been created.
type CheckoutResponse struct {
	OrderID   uuid.UUID `json:"orderId"`
	SessionID string    `json:"sessionId"`
}

// UpdateOrderStatusRequest is the payload for the admin status update.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
