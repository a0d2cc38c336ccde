package algo

// Arithmetic is the scalar field an Algorithm is evaluated over.
// Differentiation backends implement it for their active type.
//
// Implementations:
//   - Float: plain float64
//   - tape.Tape: records a Wengert list (reverse, tape, jit, codegen, graph)
//   - forward arena: values carrying a full tangent vector
type Arithmetic[S any] interface {
	// Const returns a scalar holding the constant v (no derivative).
	Const(v float64) S

	// Element-wise binary operations
	Add(a, b S) S
	Sub(a, b S) S
	Mul(a, b S) S
	Div(a, b S) S
}

// Float is the plain float64 arithmetic.
type Float struct{}

// Compile-time check that Float implements Arithmetic.
var _ Arithmetic[float64] = Float{}

func (Float) Const(v float64) float64  { return v }
func (Float) Add(a, b float64) float64 { return a + b }
func (Float) Sub(a, b float64) float64 { return a - b }
func (Float) Mul(a, b float64) float64 { return a * b }
func (Float) Div(a, b float64) float64 { return a / b }
