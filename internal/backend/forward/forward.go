// Package forward implements vector forward mode.
//
// Every active value carries its derivative with respect to all n inputs
// (its tangent vector), so one evaluation of the algorithm yields the whole
// gradient. Values live in an arena that is sized during Setup and reused by
// every Evaluate.
package forward

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/gradient"
)

// Dual is a handle to a value and its tangent vector in an Arena.
type Dual int32

// Arena stores duals contiguously: slot i holds the value at data[i*stride]
// followed by n tangent components.
type Arena struct {
	n      int
	stride int
	data   []float64
	next   int
}

// Compile-time check that Arena implements algo.Arithmetic.
var _ algo.Arithmetic[Dual] = (*Arena)(nil)

// NewArena creates an arena for n independent variables.
func NewArena(n int) *Arena {
	return &Arena{n: n, stride: n + 1}
}

// Reset releases every dual while keeping the allocated storage.
func (ar *Arena) Reset() {
	ar.next = 0
}

// Len returns the number of duals in use.
func (ar *Arena) Len() int {
	return ar.next
}

// Value returns the value of d.
func (ar *Arena) Value(d Dual) float64 {
	return ar.data[int(d)*ar.stride]
}

// Tangent returns the tangent vector of d. The slice aliases arena storage.
func (ar *Arena) Tangent(d Dual) []float64 {
	base := int(d)*ar.stride + 1
	return ar.data[base : base+ar.n]
}

// Input allocates the j-th independent variable with value v.
func (ar *Arena) Input(j int, v float64) Dual {
	d, s := ar.alloc()
	s[0] = v
	s[1+j] = 1
	return d
}

// Const allocates a constant.
func (ar *Arena) Const(v float64) Dual {
	d, s := ar.alloc()
	s[0] = v
	return d
}

// Add returns a + b.
func (ar *Arena) Add(a, b Dual) Dual {
	d, s := ar.alloc()
	sa, sb := ar.slot(a), ar.slot(b)
	for k := range s {
		s[k] = sa[k] + sb[k]
	}
	return d
}

// Sub returns a - b.
func (ar *Arena) Sub(a, b Dual) Dual {
	d, s := ar.alloc()
	sa, sb := ar.slot(a), ar.slot(b)
	for k := range s {
		s[k] = sa[k] - sb[k]
	}
	return d
}

// Mul returns a * b: (a*b)' = a'*b + a*b'.
func (ar *Arena) Mul(a, b Dual) Dual {
	d, s := ar.alloc()
	sa, sb := ar.slot(a), ar.slot(b)
	va, vb := sa[0], sb[0]
	s[0] = va * vb
	for k := 1; k < len(s); k++ {
		s[k] = sa[k]*vb + va*sb[k]
	}
	return d
}

// Div returns a / b: (a/b)' = (a' - (a/b)*b') / b.
func (ar *Arena) Div(a, b Dual) Dual {
	d, s := ar.alloc()
	sa, sb := ar.slot(a), ar.slot(b)
	vb := sb[0]
	q := sa[0] / vb
	s[0] = q
	for k := 1; k < len(s); k++ {
		s[k] = (sa[k] - q*sb[k]) / vb
	}
	return d
}

func (ar *Arena) slot(d Dual) []float64 {
	base := int(d) * ar.stride
	return ar.data[base : base+ar.stride]
}

// alloc returns a zeroed slot. It grows storage when needed; slices obtained
// from earlier calls must not be held across alloc.
func (ar *Arena) alloc() (Dual, []float64) {
	base := ar.next * ar.stride
	if base+ar.stride > len(ar.data) {
		ar.data = append(ar.data, make([]float64, ar.stride)...)
		ar.data = ar.data[:cap(ar.data)]
	}
	s := ar.data[base : base+ar.stride]
	clear(s)
	d := Dual(ar.next)
	ar.next++
	return d, s
}

// Gradient is the vector forward mode gradient of an algorithm.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[Dual]
	arena  *Arena
	ax     []Dual
	g      []float64
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a forward mode gradient for a.
func New(a algo.Algorithm[Dual]) *Gradient {
	return &Gradient{algo: a}
}

// Option returns the last option passed to Setup.
func (g *Gradient) Option() algo.Option {
	return g.option
}

// Setup configures the algorithm and sizes the arena with one evaluation so
// that later calls do not allocate.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt
	n := g.algo.Domain()
	g.arena = NewArena(n)
	g.ax = make([]Dual, n)
	g.g = make([]float64, n)
	g.ready = true

	_, err := g.Evaluate(make([]float64, n))
	return err
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Evaluate propagates tangents through the algorithm at x.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	g.arena.Reset()
	for j, v := range x {
		g.ax[j] = g.arena.Input(j, v)
	}
	ay := g.algo.Evaluate(g.arena, g.ax)
	copy(g.g, g.arena.Tangent(ay[len(ay)-1]))
	return g.g, nil
}
