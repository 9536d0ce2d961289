package gesture

import "errors"

var (
	ErrUnknownButton    = errors.New("unknown button")
	ErrInvalidThreshold = errors.New("long press threshold must be at least one tick")
)
