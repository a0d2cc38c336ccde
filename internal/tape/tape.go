package tape

import (
	"fmt"

	"github.com/born-ml/gradspeed/internal/algo"
)

// Tape records operations during an evaluation and computes gradients by
// walking the recording in reverse.
//
// Usage:
//
//	t := tape.New()
//	x := []tape.Var{t.Input(1), t.Input(2)}
//	y := t.Mul(x[0], x[1])
//	g := make([]float64, 2)
//	t.Gradient(y, g) // g = [2, 1]
type Tape struct {
	code   []Instruction // recorded instructions (in execution order)
	values []float64     // values[i] is the value of slot i
	inputs []Var         // slots of the independent variables
	adj    []float64     // adjoint scratch for Gradient

	cse  bool                // hash-cons identical instructions
	memo map[Instruction]Var // instruction -> slot when cse is on
}

// Option configures a Tape.
type Option func(*Tape)

// WithCSE enables hash-consing while recording: identical instructions share
// one slot, constant operands are folded and identities such as x+0 and x*1
// are simplified away.
func WithCSE() Option {
	return func(t *Tape) {
		t.cse = true
	}
}

// New creates an empty tape.
func New(opts ...Option) *Tape {
	t := &Tape{
		code:   make([]Instruction, 0, 64), // Pre-allocate for common case
		values: make([]float64, 0, 64),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cse {
		t.memo = make(map[Instruction]Var)
	}
	return t
}

// Compile-time check that Tape implements algo.Arithmetic.
var _ algo.Arithmetic[Var] = (*Tape)(nil)

// Clear resets the tape, removing all recorded instructions.
// Allocated capacity and options are preserved.
func (t *Tape) Clear() {
	t.code = t.code[:0]
	t.values = t.values[:0]
	t.inputs = t.inputs[:0]
	if t.memo != nil {
		clear(t.memo)
	}
}

// Len returns the number of recorded instructions.
func (t *Tape) Len() int {
	return len(t.code)
}

// NumInputs returns the number of independent variables.
func (t *Tape) NumInputs() int {
	return len(t.inputs)
}

// Inputs returns the slots of the independent variables in declaration order.
func (t *Tape) Inputs() []Var {
	return t.inputs
}

// Code returns the recorded instructions. The slice must not be modified.
func (t *Tape) Code() []Instruction {
	return t.code
}

// Value returns the current value of slot v.
func (t *Tape) Value(v Var) float64 {
	return t.values[v]
}

// CSE reports whether the tape hash-conses instructions.
func (t *Tape) CSE() bool {
	return t.cse
}

// Input declares a new independent variable with value v.
func (t *Tape) Input(v float64) Var {
	slot := t.push(Instruction{Op: OpInput, A: Var(len(t.inputs))}, v)
	t.inputs = append(t.inputs, slot)
	return slot
}

// Const records the constant v.
func (t *Tape) Const(v float64) Var {
	ins := Instruction{Op: OpConst, K: v}
	if t.cse {
		if slot, ok := t.memo[ins]; ok {
			return slot
		}
		slot := t.push(ins, v)
		t.memo[ins] = slot
		return slot
	}
	return t.push(ins, v)
}

// Add records a + b.
func (t *Tape) Add(a, b Var) Var { return t.binary(OpAdd, a, b) }

// Sub records a - b.
func (t *Tape) Sub(a, b Var) Var { return t.binary(OpSub, a, b) }

// Mul records a * b.
func (t *Tape) Mul(a, b Var) Var { return t.binary(OpMul, a, b) }

// Div records a / b.
func (t *Tape) Div(a, b Var) Var { return t.binary(OpDiv, a, b) }

func (t *Tape) binary(op OpCode, a, b Var) Var {
	if t.cse {
		return t.binaryCSE(op, a, b)
	}
	return t.push(Instruction{Op: op, A: a, B: b}, eval(op, t.values[a], t.values[b]))
}

// push appends an instruction with its value and returns its slot.
func (t *Tape) push(ins Instruction, v float64) Var {
	slot := Var(len(t.code))
	t.code = append(t.code, ins)
	t.values = append(t.values, v)
	return slot
}

// Forward replays the recording for new input values.
func (t *Tape) Forward(x []float64) {
	if len(x) != len(t.inputs) {
		panic(fmt.Sprintf("tape: forward with %d inputs, recorded %d", len(x), len(t.inputs)))
	}
	v := t.values
	for i, ins := range t.code {
		switch ins.Op {
		case OpInput:
			v[i] = x[ins.A]
		case OpConst:
			v[i] = ins.K
		case OpAdd:
			v[i] = v[ins.A] + v[ins.B]
		case OpSub:
			v[i] = v[ins.A] - v[ins.B]
		case OpMul:
			v[i] = v[ins.A] * v[ins.B]
		case OpDiv:
			v[i] = v[ins.A] / v[ins.B]
		}
	}
}

// Gradient computes the derivative of slot dep with respect to every input
// by walking the tape backwards from dep, and stores it in g.
//
// Algorithm:
//  1. Set the adjoint of dep to one and every other adjoint to zero
//  2. Walk instructions from dep down to the first one
//  3. For each instruction, push its adjoint to its operands (chain rule)
//  4. Read the adjoints of the input slots
func (t *Tape) Gradient(dep Var, g []float64) {
	if len(g) != len(t.inputs) {
		panic(fmt.Sprintf("tape: gradient buffer has length %d, want %d", len(g), len(t.inputs)))
	}
	if cap(t.adj) < len(t.code) {
		t.adj = make([]float64, len(t.code))
	}
	adj := t.adj[:len(t.code)]
	clear(adj)
	adj[dep] = 1

	v := t.values
	for i := int(dep); i >= 0; i-- {
		d := adj[i]
		if d == 0 {
			continue
		}
		ins := t.code[i]
		switch ins.Op {
		case OpAdd:
			adj[ins.A] += d
			adj[ins.B] += d
		case OpSub:
			adj[ins.A] += d
			adj[ins.B] -= d
		case OpMul:
			adj[ins.A] += d * v[ins.B]
			adj[ins.B] += d * v[ins.A]
		case OpDiv:
			adj[ins.A] += d / v[ins.B]
			adj[ins.B] -= d * v[i] / v[ins.B]
		}
	}

	for k, slot := range t.inputs {
		g[k] = adj[slot]
	}
}

// Stats returns the number of recorded instructions per op code.
func (t *Tape) Stats() map[OpCode]int {
	stats := make(map[OpCode]int, int(numOps))
	for _, ins := range t.code {
		stats[ins.Op]++
	}
	return stats
}
