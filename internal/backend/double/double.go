// Package double evaluates an algorithm on plain float64 values.
//
// It computes no derivative; its rate is the baseline the gradient backends
// are compared against.
package double

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/gradient"
)

// Function evaluates an algorithm without differentiation.
type Function struct {
	option algo.Option
	algo   algo.Algorithm[float64]
	ready  bool
}

// New creates a function evaluator for a.
func New(a algo.Algorithm[float64]) *Function {
	return &Function{algo: a}
}

// Option returns the last option passed to Setup.
func (f *Function) Option() algo.Option {
	return f.option
}

// Setup configures the algorithm.
func (f *Function) Setup(opt algo.Option) error {
	f.ready = false
	if err := f.algo.Setup(opt); err != nil {
		return err
	}
	f.option = opt
	f.ready = true
	return nil
}

// Domain returns the number of inputs.
func (f *Function) Domain() int {
	return f.algo.Domain()
}

// Range returns the number of outputs.
func (f *Function) Range() int {
	return f.algo.Range()
}

// Evaluate returns the algorithm outputs at x (not a gradient).
func (f *Function) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(f.ready, f.Domain(), x); err != nil {
		return nil, err
	}
	return f.algo.Evaluate(algo.Float{}, x), nil
}
