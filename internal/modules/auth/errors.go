package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrMFAAlreadyEnabled  = errors.New("mfa already enabled")
	ErrMFANotEnrolled     = errors.New("mfa not enrolled")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)
