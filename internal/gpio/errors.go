package gpio

import "errors"

var (
	ErrInvalidPin       = errors.New("invalid GPIO pin")
	ErrUnknownParameter = errors.New("unknown pin parameter")
)
