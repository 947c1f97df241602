package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that handlers translate into the
// response envelope. The code selects the HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NotFound builds a not-found error naming the missing entity.
func NotFound(entity string) *DomainError {
	return NewDomainError(ErrCodeNotFound, entity+" not found")
}

// Conflict builds a conflict error for duplicate unique fields.
func Conflict(message string) *DomainError {
	return NewDomainError(ErrCodeConflict, message)
}

// Invalid builds a validation error.
func Invalid(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrInvalidID            = NewDomainError(ErrCodeInvalidID, "Invalid id")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmailIncorrect       = NewDomainError(ErrCodeValidation, "Email incorrect")
	ErrPasswordIncorrect    = NewDomainError(ErrCodeValidation, "Password incorrect")
	ErrEmailTaken           = NewDomainError(ErrCodeConflict, "Email already registered")
	ErrUserBlocked          = NewDomainError(ErrCodeForbidden, "User is blocked")
	ErrTokenInvalid         = NewDomainError(ErrCodeUnauthorised, "Invalid or expired token")
	ErrResetTokenExpired    = NewDomainError(ErrCodeNotFound, "Reset token expired or not found")
	ErrDuplicateConfig      = NewDomainError(ErrCodeConflict, "Configuration with the same option set already exists")
	ErrCouponExpiryPast     = NewDomainError(ErrCodeValidation, "Expiry date must be in the future")
	ErrEmptyOrder           = NewDomainError(ErrCodeValidation, "Order must contain at least one line")
	ErrInsufficientRole     = NewDomainError(ErrCodeForbidden, "Insufficient role")
	ErrStarOutOfRange       = NewDomainError(ErrCodeValidation, "Star must be between 1 and 5")
	ErrDetailNotFound       = NewDomainError(ErrCodeNotFound, "Product detail not found")
	ErrDanglingOptionRef    = NewDomainError(ErrCodeNotFound, "One or more variation options not found")
	ErrInvalidOrderStatus   = NewDomainError(ErrCodeValidation, "Invalid order status")
	ErrCartLineNotFound     = NewDomainError(ErrCodeNotFound, "Cart line not found")
	ErrPaymentUnavailable   = NewDomainError(ErrCodeInternalError, "Payment service unavailable")
	ErrReferencedEntityGone = NewDomainError(ErrCodeNotFound, "Referenced entity not found")
)
