package deskclock

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidInput  = errors.New("invalid input command")
)
