package config

import "errors"

// Configuration loading errors
var (
	ErrConfigFileRead     = errors.New("failed to read config file")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigUnmarshal    = errors.New("failed to unmarshal config")
)

// Configuration validation errors
var (
	ErrConfigNotPointer = errors.New("config must be a non-nil pointer")
	ErrConfigNotStruct  = errors.New("config must be a pointer to struct")
)
