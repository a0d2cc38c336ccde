package driver

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/speed"
)

// Common errors.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnknownBackend       = errors.New("unknown backend")
	ErrUnknownAlgorithm     = algo.ErrUnknownAlgorithm
	ErrTiming               = speed.ErrTiming
	ErrDuplicateBackend     = errors.New("backend already registered")
)

// Exit codes returned by ExitCode.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInvalidConfig    = 2
	ExitUnknownBackend   = 3
	ExitUnknownAlgorithm = 4
	ExitTiming           = 5
)

// ConfigError describes a rejected configuration field.
// It matches ErrInvalidConfiguration with errors.Is.
type ConfigError struct {
	Field   string // configuration key (e.g., "size", "min_time")
	Value   string // rejected value
	Details string // why the value was rejected
	Err     error  // underlying cause, if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s = %s: %s", ErrInvalidConfiguration, e.Field, e.Value, e.Details)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration, e.Field, e.Details)
}

// Unwrap returns ErrInvalidConfiguration and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfiguration, e.Err}
	}
	return []error{ErrInvalidConfiguration}
}

// ExitCode maps the outcome of a run to a process exit status.
// Unknown names are checked before generic configuration errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUnknownBackend):
		return ExitUnknownBackend
	case errors.Is(err, ErrUnknownAlgorithm):
		return ExitUnknownAlgorithm
	case errors.Is(err, ErrInvalidConfiguration):
		return ExitInvalidConfig
	case errors.Is(err, ErrTiming):
		return ExitTiming
	default:
		return ExitFailure
	}
}
