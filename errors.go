package calendar

import "errors"

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrNoSurface is returned when a calendar is constructed without a
	// drawing surface.
	ErrNoSurface = errors.New("calendar: no drawing surface")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("calendar: invalid config")
	// ErrLoadConfig wraps failures reading or decoding a config file.
	ErrLoadConfig = errors.New("calendar: load config failed")
)
