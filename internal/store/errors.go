package store

import "errors"

var (
	ErrNoState      = errors.New("no saved state")
	ErrInvalidState = errors.New("invalid saved state")
	ErrStateRead    = errors.New("failed to read state file")
	ErrStateWrite   = errors.New("failed to write state file")
)
