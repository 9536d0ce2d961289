package dummy

import "errors"

var (
	ErrInvalidSpec     = errors.New("invalid dummy button spec")
	ErrDuplicateButton = errors.New("button already exists")
	ErrUnknownButton   = errors.New("unknown button")
	ErrAlreadyStarted  = errors.New("driver already started")
)
