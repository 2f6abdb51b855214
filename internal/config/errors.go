package config

import "errors"

// Error kinds returned by Load and Validate.
var (
	// ErrInvalidConfig marks values that decode but fail validation, or do
	// not decode into Config at all (e.g. a malformed duration).
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks unreadable sources: the YAML file, the dotenv file
	// or the environment.
	ErrLoadConfig = errors.New("load config failed")
)
