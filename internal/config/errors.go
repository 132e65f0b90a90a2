package config

import "errors"

// Sentinel errors reported by configuration loading and validation.
// Callers match them with errors.Is.
var (
	// ErrUnknownLogLevel reports a logging.level outside debug, info,
	// warn, error.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrUnknownLogFormat reports a logging.format outside text, json.
	ErrUnknownLogFormat = errors.New("unknown log format")

	// ErrInvalidSettings reports a system settings snapshot that is not
	// valid JSON.
	ErrInvalidSettings = errors.New("invalid settings snapshot")
)
