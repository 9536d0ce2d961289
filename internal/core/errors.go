package core

import "errors"

var (
	ErrInvalidTickRate = errors.New("tick rate must be between 1 and 1000 ticks per second")
)
