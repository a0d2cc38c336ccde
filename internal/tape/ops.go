// Package tape records scalar operations as a Wengert list and differentiates
// them in reverse mode.
//
// A Tape implements algo.Arithmetic[Var]: evaluating an algorithm with a Tape
// records every operation (in execution order) together with its value.
// The recording can then be replayed for new inputs (Forward) and swept
// backwards (Gradient) without evaluating the algorithm again.
//
// Supported operations and their partial derivatives:
//   - Add: o = a + b, do/da = 1, do/db = 1
//   - Sub: o = a - b, do/da = 1, do/db = -1
//   - Mul: o = a * b, do/da = b, do/db = a
//   - Div: o = a / b, do/da = 1/b, do/db = -o/b
package tape

import "fmt"

// Var is a handle to a value slot on a tape. The slot of an instruction is
// its index in the code.
type Var int32

// OpCode identifies the operation of an instruction.
type OpCode uint8

// Supported operations.
const (
	OpInput OpCode = iota // independent variable; A holds the input index
	OpConst               // constant; K holds the value
	OpAdd
	OpSub
	OpMul
	OpDiv

	numOps
)

// String returns the name of the op code.
func (op OpCode) String() string {
	switch op {
	case OpInput:
		return "input"
	case OpConst:
		return "const"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Binary reports whether op reads two operand slots.
func (op OpCode) Binary() bool {
	return op >= OpAdd && op < numOps
}

// Instruction is one recorded operation.
type Instruction struct {
	Op OpCode
	A  Var     // first operand (input index for OpInput)
	B  Var     // second operand
	K  float64 // constant value for OpConst
}

// eval computes the value of a binary instruction.
func eval(op OpCode, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic(fmt.Sprintf("tape: eval of non-binary op %s", op))
	}
}
