package gpio

import "errors"

var (
	ErrOpenChip        = errors.New("failed to open GPIO chip")
	ErrInvalidSpec     = errors.New("invalid GPIO button spec")
	ErrDuplicateButton = errors.New("button already exists")
	ErrAlreadyStarted  = errors.New("driver already started")
	ErrNoButtons       = errors.New("no buttons configured")
	ErrClosed          = errors.New("driver has been stopped")
)
