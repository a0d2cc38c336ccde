// Package graph implements the symbolic graph backend.
//
// Setup records the algorithm with hash-consing, so identical sub-expressions
// become one node and constant sub-expressions are folded, then prunes every
// node the last output does not depend on. Evaluate replays the reduced graph.
package graph

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Gradient evaluates a reduced expression graph.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[tape.Var]
	rec    *tape.Tape // hash-consed recording
	graph  *tape.Tape // pruned copy of rec
	dep    tape.Var
	g      []float64
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a graph gradient for a.
func New(a algo.Algorithm[tape.Var]) *Gradient {
	return &Gradient{
		algo: a,
		rec:  tape.New(tape.WithCSE()),
	}
}

// Option returns the last option passed to Setup.
func (g *Gradient) Option() algo.Option {
	return g.option
}

// Setup configures the algorithm, records and reduces its graph.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt
	dep := replay.Record(g.rec, g.algo)
	g.graph, g.dep = g.rec.Optimize(dep)
	g.g = make([]float64, g.algo.Domain())
	g.ready = true
	return nil
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Size returns the number of nodes in the reduced graph. Valid after Setup.
func (g *Gradient) Size() int {
	if g.graph == nil {
		return 0
	}
	return g.graph.Len()
}

// Evaluate replays the graph at x and returns the gradient of the last output.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	g.graph.Forward(x)
	g.graph.Gradient(g.dep, g.g)
	return g.g, nil
}
