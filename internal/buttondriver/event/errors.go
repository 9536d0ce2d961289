package event

import "errors"

var (
	ErrInvalidSpec    = errors.New("invalid event button spec")
	ErrAlreadyStarted = errors.New("driver already started")
	ErrNoButtons      = errors.New("no buttons configured")
)
