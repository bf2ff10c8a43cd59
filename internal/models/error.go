package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Ordering errors
	ErrEmptyCart     = "EMPTY_CART"
	ErrOrderNotFound = "ORDER_NOT_FOUND"
	ErrItemNotFound  = "MENU_ITEM_NOT_FOUND"

	// OTP errors
	ErrOTPNotFound = "OTP_NOT_FOUND"
	ErrOTPExpired  = "OTP_EXPIRED"
	ErrOTPMismatch = "OTP_MISMATCH"
	ErrOTPDispatch = "OTP_DISPATCH_FAILED"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
