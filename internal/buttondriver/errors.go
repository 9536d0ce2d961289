package buttondriver

import "errors"

var (
	ErrUnknownDriver   = errors.New("unknown button driver")
	ErrDuplicateDriver = errors.New("button driver already registered")
	ErrInvalidConfig   = errors.New("invalid button driver config")
)
