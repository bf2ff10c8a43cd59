package services

import "errors"

// Sentinel errors returned by the services. Callers match them with errors.Is;
// detail is added by wrapping with fmt.Errorf("%w: ...").
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrEmptyCart    = errors.New("cart is empty")

	ErrOTPNotFound = errors.New("otp not found")
	ErrOTPExpired  = errors.New("otp expired")
	ErrOTPMismatch = errors.New("otp mismatch")
	ErrDispatch    = errors.New("failed to send OTP")
)
