package modes

import "errors"

var (
	ErrUnknownApp = errors.New("unknown app")
)
