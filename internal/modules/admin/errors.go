package admin

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrBadTransition = errors.New("invalid status transition")
	ErrValidation    = errors.New("validation failed")
)
