package domain

import (
	"errors"
	"fmt"
)

// ConfigError marks a data-integrity problem (duplicate category
// registration, unresolvable lookup, malformed input). It aborts the whole
// computation: a partial tax pass must never be reported as final.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigError creates a ConfigError with a formatted reason.
func NewConfigError(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
