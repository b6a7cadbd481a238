package match

import "errors"

var (
	ErrInvalidOrder  = errors.New("the order is invalid: price and size must be positive")
	ErrInvalidParam  = errors.New("the param is invalid")
	ErrSequenceGap   = errors.New("sequence gap detected")
	ErrNegativeLevel = errors.New("price level size would become negative")
)
