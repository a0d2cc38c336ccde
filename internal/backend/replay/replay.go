// Package replay implements the "tape" backend: the algorithm is recorded
// once in Setup and every Evaluate replays the recording for the new argument
// before sweeping it backwards.
//
// The recording is valid for every argument because the registered
// algorithms have no value dependent branches.
package replay

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Gradient replays a recorded tape.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[tape.Var]
	tape   *tape.Tape
	dep    tape.Var // slot of the last output
	g      []float64
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a replay gradient for a.
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

// Setup configures the algorithm and records it.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt
	g.dep = Record(g.tape, g.algo)
	g.g = make([]float64, g.algo.Domain())
	g.ready = true
	return nil
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Evaluate replays the tape at x and returns the gradient of the last output.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	g.tape.Forward(x)
	g.tape.Gradient(g.dep, g.g)
	return g.g, nil
}

// Record clears t, evaluates a on it with every input equal to one and
// returns the slot of the last output. a must already be set up.
func Record(t *tape.Tape, a algo.Algorithm[tape.Var]) tape.Var {
	t.Clear()
	ax := make([]tape.Var, a.Domain())
	for j := range ax {
		ax[j] = t.Input(1)
	}
	ay := a.Evaluate(t, ax)
	return ay[len(ay)-1]
}
