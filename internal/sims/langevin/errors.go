package langevin

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("langevin: invalid configuration")

// ConfigError names the offending configuration key.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// StepError wraps a failure inside the per-site update with its position.
type StepError struct {
	Iteration int
	Site      int
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("langevin: iteration %d site %d: %v", e.Iteration, e.Site, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
