package cart

import "errors"

var (
	ErrInvalidUnit      = errors.New("unit must not be negative")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrFoodNotFound     = errors.New("food not found")
)
