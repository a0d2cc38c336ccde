// Package reverse implements eager operator-overloaded reverse mode.
//
// Every Evaluate records a fresh tape while the algorithm runs and then sweeps
// it backwards from the last output. Nothing is prepared in Setup besides
// buffers, so the recording cost is paid on every call.
package reverse

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Gradient is the eager reverse mode gradient of an algorithm.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[tape.Var]
	tape   *tape.Tape
	ax     []tape.Var // active copy of the argument
	g      []float64  // result
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a reverse mode gradient for a.
func New(a algo.Algorithm[tape.Var]) *Gradient {
	return &Gradient{
		algo: a,
		tape: tape.New(),
	}
}

// Option returns the last option passed to Setup.
func (g *Gradient) Option() algo.Option {
	return g.option
}

// Setup configures the algorithm and sizes the buffers.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt
	n := g.algo.Domain()
	g.ax = make([]tape.Var, n)
	g.g = make([]float64, n)
	g.tape.Clear()
	g.ready = true
	return nil
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Evaluate records the algorithm at x and returns the gradient of its last output.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	g.tape.Clear()
	for j, v := range x {
		g.ax[j] = g.tape.Input(v)
	}
	ay := g.algo.Evaluate(g.tape, g.ax)
	g.tape.Gradient(ay[len(ay)-1], g.g)
	return g.g, nil
}
