// Package codegen implements the source transformation backend.
//
// Setup records the algorithm, prunes the recording and translates it into a
// straight-line JavaScript function that computes every value and then every
// adjoint. The source is compiled once with goja. Arguments and results pass
// through two ArrayBuffers shared with Go, so Evaluate only copies x in, calls
// the compiled function and copies the gradient out.
package codegen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/tape"
)

// ErrCompile is returned when generated source fails to compile or run.
var ErrCompile = errors.New("codegen: compile generated source")

// Gradient calls generated and compiled derivative code.
type Gradient struct {
	option algo.Option
	algo   algo.Algorithm[tape.Var]
	rec    *tape.Tape
	fn     goja.Callable
	src    string
	xbuf   []byte // backs the Float64Array x seen by the generated code
	gbuf   []byte // backs the Float64Array g written by the generated code
	g      []float64
	ready  bool
}

// Compile-time check that Gradient implements gradient.Gradient.
var _ gradient.Gradient = (*Gradient)(nil)

// New creates a codegen gradient for a.
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

// Setup configures the algorithm, generates source for its gradient and
// compiles it in a fresh runtime.
func (g *Gradient) Setup(opt algo.Option) error {
	g.ready = false
	if err := g.algo.Setup(opt); err != nil {
		return err
	}
	g.option = opt

	dep := replay.Record(g.rec, g.algo)
	g.src = Generate(g.rec.Optimize(dep))

	prog, err := goja.Compile("gradient.js", g.src, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	vm := goja.New()
	val, err := vm.RunProgram(prog)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	factory, ok := goja.AssertFunction(val)
	if !ok {
		return fmt.Errorf("%w: generated source is not a function", ErrCompile)
	}

	n := g.algo.Domain()
	g.xbuf = make([]byte, 8*n)
	g.gbuf = make([]byte, 8*n)
	val, err = factory(goja.Undefined(),
		vm.ToValue(vm.NewArrayBuffer(g.xbuf)),
		vm.ToValue(vm.NewArrayBuffer(g.gbuf)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if g.fn, ok = goja.AssertFunction(val); !ok {
		return fmt.Errorf("%w: generated factory did not return a function", ErrCompile)
	}
	g.g = make([]float64, n)
	g.ready = true
	return nil
}

// Domain returns the number of inputs.
func (g *Gradient) Domain() int {
	return g.algo.Domain()
}

// Source returns the generated JavaScript. Valid after Setup.
func (g *Gradient) Source() string {
	return g.src
}

// Evaluate calls the compiled gradient function at x.
func (g *Gradient) Evaluate(x []float64) ([]float64, error) {
	if err := gradient.CheckInput(g.ready, g.Domain(), x); err != nil {
		return nil, err
	}
	for j, v := range x {
		binary.NativeEndian.PutUint64(g.xbuf[8*j:], math.Float64bits(v))
	}
	if _, err := g.fn(goja.Undefined()); err != nil {
		return nil, fmt.Errorf("codegen: evaluate: %w", err)
	}
	for j := range g.g {
		g.g[j] = math.Float64frombits(binary.NativeEndian.Uint64(g.gbuf[8*j:]))
	}
	return g.g, nil
}

// Generate returns JavaScript source for the gradient of dep on t.
//
// The source evaluates to a factory taking two ArrayBuffers, xb for the
// inputs and gb for the gradient. The factory returns a function of no
// arguments that reads x from xb and writes the derivative of dep with
// respect to every input into gb. Value and adjoint storage is allocated once,
// by the factory.
func Generate(t *tape.Tape, dep tape.Var) string {
	code := t.Code()
	n := len(code)

	var b strings.Builder
	b.WriteString("(function (xb, gb) {\n")
	b.WriteString("  var x = new Float64Array(xb);\n")
	b.WriteString("  var g = new Float64Array(gb);\n")
	fmt.Fprintf(&b, "  var v = new Float64Array(%d);\n", n)
	fmt.Fprintf(&b, "  var a = new Float64Array(%d);\n", n)
	for i, ins := range code {
		if ins.Op == tape.OpConst {
			fmt.Fprintf(&b, "  v[%d] = %s;\n", i, literal(ins.K))
		}
	}
	b.WriteString("  return function () {\n")

	// values
	for i, ins := range code {
		switch ins.Op {
		case tape.OpInput:
			fmt.Fprintf(&b, "    v[%d] = x[%d];\n", i, ins.A)
		case tape.OpAdd:
			fmt.Fprintf(&b, "    v[%d] = v[%d] + v[%d];\n", i, ins.A, ins.B)
		case tape.OpSub:
			fmt.Fprintf(&b, "    v[%d] = v[%d] - v[%d];\n", i, ins.A, ins.B)
		case tape.OpMul:
			fmt.Fprintf(&b, "    v[%d] = v[%d] * v[%d];\n", i, ins.A, ins.B)
		case tape.OpDiv:
			fmt.Fprintf(&b, "    v[%d] = v[%d] / v[%d];\n", i, ins.A, ins.B)
		}
	}

	// adjoints
	fmt.Fprintf(&b, "    for (var i = 0; i < %d; i++) a[i] = 0;\n", n)
	fmt.Fprintf(&b, "    a[%d] = 1;\n", dep)
	for i := int(dep); i >= 0; i-- {
		ins := code[i]
		switch ins.Op {
		case tape.OpAdd:
			fmt.Fprintf(&b, "    a[%d] += a[%d]; a[%d] += a[%d];\n", ins.A, i, ins.B, i)
		case tape.OpSub:
			fmt.Fprintf(&b, "    a[%d] += a[%d]; a[%d] -= a[%d];\n", ins.A, i, ins.B, i)
		case tape.OpMul:
			fmt.Fprintf(&b, "    a[%d] += a[%d] * v[%d]; a[%d] += a[%d] * v[%d];\n", ins.A, i, ins.B, ins.B, i, ins.A)
		case tape.OpDiv:
			fmt.Fprintf(&b, "    a[%d] += a[%d] / v[%d]; a[%d] -= a[%d] * v[%d] / v[%d];\n", ins.A, i, ins.B, ins.B, i, i, ins.B)
		}
	}

	for k, slot := range t.Inputs() {
		fmt.Fprintf(&b, "    g[%d] = a[%d];\n", k, slot)
	}
	b.WriteString("  };\n})\n")
	return b.String()
}

// literal formats v as a JavaScript number.
func literal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
