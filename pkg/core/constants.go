package core

import "errors"

// Errors
var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrDuplicateOrderID   = errors.New("duplicate order id")
	ErrEmptyQueue         = errors.New("queue is empty")
	ErrStaleHandle        = errors.New("order already removed from queue")
	ErrRestingMarketOrder = errors.New("market orders cannot rest on the book")
)
