package booking

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotAvailable  = errors.New("slot not available")
	ErrNotFound      = errors.New("booking not found")
	ErrForbidden     = errors.New("forbidden")
	ErrBadTransition = errors.New("invalid status transition")
)
