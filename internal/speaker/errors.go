package speaker

import "errors"

var (
	ErrOutputRequired = errors.New("output is required")
	ErrInvalidPattern = errors.New("invalid beep pattern")
	ErrClosed         = errors.New("speaker is closed")
	ErrPeriphInit     = errors.New("failed to initialize periph.io")
	ErrPinNotFound    = errors.New("failed to find pin")
)
