package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNoOrderableItems  = errors.New("none of the submitted items can be ordered from this vendor")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrOrderIDTaken      = errors.New("order id already in use")
)
