package config

import "errors"

var (
	// ErrUnknownKey indicates a config key that does not exist.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value that does not fit its key.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrPresetNotFound indicates no preset has the requested name.
	ErrPresetNotFound = errors.New("preset not found")
)
