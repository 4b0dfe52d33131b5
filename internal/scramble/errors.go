package scramble

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates options that would divide by zero or never terminate.
var ErrInvalidConfig = errors.New("scramble: invalid configuration")

// ConfigError reports which option was rejected.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scramble: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
