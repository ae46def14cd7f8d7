package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeCategoryInUse       = "CATEGORY_IN_USE"
	ErrCodeInvalidPromotion    = "INVALID_PROMOTION"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeUnsupportedMedia    = "UNSUPPORTED_MEDIA"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrMenuItemNotFound    = NewDomainError(ErrCodeNotFound, "One or more menu items not found")
	ErrMenuItemUnavailable = NewDomainError(ErrCodeMenuItemUnavailable, "One or more menu items are currently unavailable")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrCategoryInUse       = NewDomainError(ErrCodeCategoryInUse, "Category still has menu items")
	ErrUnauthorised        = NewDomainError(ErrCodeUnauthorised, "Invalid credentials")
	ErrUnsupportedMedia    = NewDomainError(ErrCodeUnsupportedMedia, "Only image and video uploads are supported")
)

// ValidationError wraps a request validation failure.
func ValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// InvalidPromotion wraps a promotion invariant violation.
func InvalidPromotion(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidPromotion, message)
}
