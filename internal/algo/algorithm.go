package algo

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Common errors.
var (
	ErrInvalidSize      = errors.New("invalid size")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Algorithm names.
const (
	DetByMinorName = "det_by_minor"
	AnODEName      = "an_ode"
)

// Algorithm is a test function evaluated over the scalar type S.
//
// Lifecycle: constructed once, reconfigured by Setup (which may reallocate
// internal buffers), then evaluated many times between Setup calls.
type Algorithm[S any] interface {
	// Setup (re)allocates internal state for opt.
	// Returns an error wrapping ErrInvalidSize if opt.Size violates the
	// structural constraint of the algorithm.
	Setup(opt Option) error

	// Domain returns the input dimension n. Valid after Setup.
	Domain() int

	// Range returns the output dimension m. Valid after Setup.
	Range() int

	// Evaluate computes y = f(x) with len(x) == Domain() and len(y) == Range().
	// It is deterministic and only reuses scratch buffers sized by Setup.
	// The returned slice may be reused by the next call.
	Evaluate(ar Arithmetic[S], x []S) []S
}

// Names returns the known algorithm names in registration order.
func Names() []string {
	return []string{DetByMinorName, AnODEName}
}

// Known reports whether name is a known algorithm.
func Known(name string) bool {
	return slices.Contains(Names(), name)
}

// New constructs the algorithm called name for the scalar type S.
func New[S any](name string) (Algorithm[S], error) {
	switch name {
	case DetByMinorName:
		return NewDetByMinor[S](), nil
	case AnODEName:
		return NewAnODE[S](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// CheckSize validates size against the structural constraint of the
// algorithm called name without constructing it.
func CheckSize(name string, size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %s: size = %d is not positive", ErrInvalidSize, name, size)
	}
	switch name {
	case DetByMinorName:
		if _, ok := squareRoot(size); !ok {
			return fmt.Errorf("%w: %s: size = %d is not a square", ErrInvalidSize, name, size)
		}
		return nil
	case AnODEName:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// squareRoot returns ell with ell*ell == n.
func squareRoot(n int) (int, bool) {
	ell := int(math.Sqrt(float64(n)))
	if ell*ell < n {
		ell++
	}
	return ell, ell*ell == n
}
