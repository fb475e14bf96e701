package config

import "errors"

// Sentinel errors for configuration loading.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrConfigMissing is returned when the configuration file cannot be opened.
	ErrConfigMissing = errors.New("config: file missing or unreadable")

	// ErrConfigInvalid is returned when the file cannot be parsed or a
	// required key is absent or out of range.
	ErrConfigInvalid = errors.New("config: invalid configuration")
)
