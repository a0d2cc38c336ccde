// Package jit compiles a recorded tape into specialized Go closures.
//
// Setup records the algorithm, prunes the recording to what the last output
// depends on and turns every instruction into a closure with its operand
// slots bound. Constants are written into the value buffer once at compile
// time. Evaluate runs the forward closures and then the reverse closures; no
// instruction decoding happens per call.
package jit

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Gradient runs compiled derivative code.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[tape.Var]
	rec    *tape.Tape
	prog   *Program
	g      []float64
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a jit gradient for a.
func New(a algo.Algorithm[tape.Var]) *Gradient {
	return &Gradient{
		algo: a,
		rec:  tape.New(),
	}
}

// Option returns the last option passed to Setup.
func (g *Gradient) Option() algo.Option {
	return g.option
}

// Setup configures the algorithm, records it and compiles the recording.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt
	dep := replay.Record(g.rec, g.algo)
	g.prog = Compile(g.rec.Optimize(dep))
	g.g = make([]float64, g.algo.Domain())
	g.ready = true
	return nil
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Evaluate runs the compiled program at x.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	g.prog.Run(x, g.g)
	return g.g, nil
}

type (
	forwardFunc func(v []float64)
	reverseFunc func(v, adj []float64)
)

// Program is compiled value and adjoint code for one dependent variable.
type Program struct {
	forward []forwardFunc
	reverse []reverseFunc
	inputs  []int
	dep     int
	v       []float64 // values, constants pre-filled
	adj     []float64
}

// Compile translates t into a Program computing the gradient of dep.
func Compile(t *tape.Tape, dep tape.Var) *Program {
	code := t.Code()
	p := &Program{
		dep:    int(dep),
		v:      make([]float64, len(code)),
		adj:    make([]float64, len(code)),
		inputs: make([]int, t.NumInputs()),
	}
	for k, slot := range t.Inputs() {
		p.inputs[k] = int(slot)
	}
	for i, ins := range code {
		if ins.Op == tape.OpConst {
			p.v[i] = ins.K
			continue
		}
		if f := compileForward(i, ins); f != nil {
			p.forward = append(p.forward, f)
		}
	}
	for i := p.dep; i >= 0; i-- {
		if f := compileReverse(i, code[i]); f != nil {
			p.reverse = append(p.reverse, f)
		}
	}
	return p
}

// Len returns the number of compiled closures.
func (p *Program) Len() int {
	return len(p.forward) + len(p.reverse)
}

// Run evaluates the program at x and stores the gradient in g.
func (p *Program) Run(x, g []float64) {
	v, adj := p.v, p.adj
	for k, slot := range p.inputs {
		v[slot] = x[k]
	}
	for _, f := range p.forward {
		f(v)
	}
	clear(adj)
	adj[p.dep] = 1
	for _, f := range p.reverse {
		f(v, adj)
	}
	for k, slot := range p.inputs {
		g[k] = adj[slot]
	}
}

func compileForward(o int, ins tape.Instruction) forwardFunc {
	a, b := int(ins.A), int(ins.B)
	switch ins.Op {
	case tape.OpAdd:
		return func(v []float64) { v[o] = v[a] + v[b] }
	case tape.OpSub:
		return func(v []float64) { v[o] = v[a] - v[b] }
	case tape.OpMul:
		return func(v []float64) { v[o] = v[a] * v[b] }
	case tape.OpDiv:
		return func(v []float64) { v[o] = v[a] / v[b] }
	default:
		return nil // inputs are copied by Run
	}
}

func compileReverse(o int, ins tape.Instruction) reverseFunc {
	a, b := int(ins.A), int(ins.B)
	switch ins.Op {
	case tape.OpAdd:
		return func(_, adj []float64) {
			adj[a] += adj[o]
			adj[b] += adj[o]
		}
	case tape.OpSub:
		return func(_, adj []float64) {
			adj[a] += adj[o]
			adj[b] -= adj[o]
		}
	case tape.OpMul:
		return func(v, adj []float64) {
			d := adj[o]
			adj[a] += d * v[b]
			adj[b] += d * v[a]
		}
	case tape.OpDiv:
		return func(v, adj []float64) {
			d := adj[o] / v[b]
			adj[a] += d
			adj[b] -= d * v[o]
		}
	default:
		return nil
	}
}
