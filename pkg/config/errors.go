package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")

	// ErrLoadEnvFile is returned when an explicitly requested .env file cannot be loaded.
	ErrLoadEnvFile = errors.New("config: failed to load env file")

	// ErrInvalidConfig is returned when a parsed value is out of range.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
