package cart

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrItemNotFound = errors.New("cart item not found")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrSlotMissing  = errors.New("cart line missing date or time")
	ErrNotAvailable = errors.New("slot not available")
)
