package config

import "errors"

// Returned by Load and Validate; match with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrLoadConfig    = errors.New("loading configuration")
)
