package driver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/speed"
)

// Default configuration values.
const (
	DefaultBackend   = "double"
	DefaultAlgorithm = algo.DetByMinorName
	DefaultSize      = 9
	DefaultMinTime   = 0.5
	DefaultFile      = "gradspeed.csv"
)

// Config selects one measurement.
type Config struct {
	Backend   string  `yaml:"backend"`
	Algorithm string  `yaml:"algorithm"`
	Size      int     `yaml:"size" validate:"gt=0"`
	TimeSetup bool    `yaml:"time_setup"`
	MinTime   float64 `yaml:"min_time" validate:"gt=0,lte=1"` // seconds
	File      string  `yaml:"file" validate:"required"`
}

// DefaultConfig returns the configuration used when no flag is given.
func DefaultConfig() Config {
	return Config{
		Backend:   DefaultBackend,
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		MinTime:   DefaultMinTime,
		File:      DefaultFile,
	}
}

// Option returns the algorithm option of c.
func (c Config) Option() algo.Option {
	return algo.Option{Size: c.Size, TimeSetup: c.TimeSetup}
}

// Duration returns MinTime as a duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.MinTime * float64(time.Second))
}

// validate is shared by Config and Sweep. Field errors name the yaml key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// structError converts a validator error into a *ConfigError for the first
// failing field.
func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Field: "config", Details: err.Error(), Err: err}
	}
	fe := verrs[0]
	details := "failed " + fe.Tag()
	if fe.Param() != "" {
		details += "=" + fe.Param()
	}
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return &ConfigError{
		Field:   field,
		Value:   fmt.Sprint(fe.Value()),
		Details: details,
	}
}

// Validate checks c against the registry.
//
// Checks run in order and the first failure is returned:
//  1. backend is registered (ErrUnknownBackend)
//  2. algorithm is known (ErrUnknownAlgorithm)
//  3. backend supports the algorithm
//  4. size satisfies the algorithm's structural constraint
//  5. 0 < min_time <= 1, and at least one nanosecond once converted
//  6. file is set
//
// Failures of 3 to 6 are *ConfigError values.
func (r *Registry) Validate(c Config) error {
	b, ok := r.Lookup(c.Backend)
	if !ok {
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownBackend, c.Backend, strings.Join(r.Names(), ", "))
	}
	if !algo.Known(c.Algorithm) {
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownAlgorithm, c.Algorithm, strings.Join(algo.Names(), ", "))
	}
	if !b.Supports(c.Algorithm) {
		return &ConfigError{
			Field:   "algorithm",
			Value:   c.Algorithm,
			Details: fmt.Sprintf("not supported by backend %s", b.Name),
		}
	}
	if err := algo.CheckSize(c.Algorithm, c.Size); err != nil {
		return &ConfigError{
			Field:   "size",
			Value:   fmt.Sprint(c.Size),
			Details: fmt.Sprintf("not valid for %s", c.Algorithm),
			Err:     err,
		}
	}
	if err := validate.Struct(c); err != nil {
		return structError(err)
	}
	if err := speed.CheckMinTime(c.Duration()); err != nil {
		return &ConfigError{
			Field:   "min_time",
			Value:   fmt.Sprint(c.MinTime),
			Details: "rounds to " + c.Duration().String(),
			Err:     err,
		}
	}
	return nil
}
