// Package gradient defines the gradient capability every differentiation
// backend implements.
//
// A Gradient wraps one algorithm and returns the gradient of its last output
// component with respect to all of its inputs. The convention is the same for
// every backend so results are comparable across algorithms with several
// outputs.
package gradient

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradspeed/internal/algo"
)

// Common errors.
var (
	ErrDomain   = errors.New("argument length does not match domain")
	ErrNotSetup = errors.New("gradient used before setup")
)

// Gradient computes the gradient of the last output of an algorithm.
//
// Implementations:
//   - forward: vector forward mode
//   - reverse: eager reverse mode, records on every call
//   - replay: records once in Setup, replays per call
//   - jit: recording compiled to Go closures
//   - codegen: recording translated to JavaScript and compiled once
//   - graph: hash-consed and pruned recording
type Gradient interface {
	// Option returns the last configuration applied by Setup.
	Option() algo.Option

	// Setup configures the wrapped algorithm and (re)allocates backend state.
	// Backends that record or compile ahead of time do it here. Calling Setup
	// again with another option replaces all prior state.
	Setup(opt algo.Option) error

	// Domain returns the number of inputs of the wrapped algorithm.
	Domain() int

	// Evaluate returns the gradient of output Range()-1 at x.
	// The returned slice has length Domain(); it is owned by the Gradient and
	// overwritten by the next call.
	Evaluate(x []float64) ([]float64, error)
}

// CheckInput returns an error if x cannot be passed to a gradient whose
// Setup has (setup == true) or has not been called.
func CheckInput(setup bool, domain int, x []float64) error {
	if !setup {
		return ErrNotSetup
	}
	if len(x) != domain {
		return fmt.Errorf("%w: len(x) = %d, domain = %d", ErrDomain, len(x), domain)
	}
	return nil
}
