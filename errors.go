package msdfatlas

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("msdfatlas: invalid config")

	// ErrCorruptCache is returned when a .fontbin file cannot be decoded.
	ErrCorruptCache = errors.New("msdfatlas: corrupt atlas cache file")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("msdfatlas: invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
