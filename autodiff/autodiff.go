// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the gradient backends.
//
// Every backend wraps one algorithm and returns the gradient of its last
// output. The reverse mode backends share an operation tape; forward mode
// carries tangent vectors instead.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradspeed/algo"
//	    "github.com/born-ml/gradspeed/autodiff"
//	)
//
//	func main() {
//	    // Record det_by_minor once, replay it per call
//	    a, _ := algo.New[autodiff.Var](algo.DetByMinorName)
//	    g := autodiff.NewReplay(a)
//	    _ = g.Setup(algo.Option{Size: 9})
//
//	    grad, _ := g.Evaluate([]float64{1, 2, 3, 4, 5, 6, 7, 8, 10})
//	}
package autodiff

import (
	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/codegen"
	"github.com/born-ml/gradspeed/internal/backend/forward"
	"github.com/born-ml/gradspeed/internal/backend/graph"
	"github.com/born-ml/gradspeed/internal/backend/jit"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/backend/reverse"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Tape records scalar operations for reverse mode.
type Tape = tape.Tape

// Var is a slot on a Tape.
type Var = tape.Var

// Dual is a value with its tangent vector, used by forward mode.
type Dual = forward.Dual

// NewTape creates an empty tape.
func NewTape(opts ...tape.Option) *Tape {
	return tape.New(opts...)
}

// WithCSE enables hash-consing and constant folding while recording.
func WithCSE() tape.Option {
	return tape.WithCSE()
}

// NewForward creates a vector forward mode gradient.
func NewForward(a algo.Algorithm[Dual]) *forward.Gradient {
	return forward.New(a)
}

// NewReverse creates an eager reverse mode gradient that records on every call.
func NewReverse(a algo.Algorithm[Var]) *reverse.Gradient {
	return reverse.New(a)
}

// NewReplay creates a reverse mode gradient that records once in Setup.
func NewReplay(a algo.Algorithm[Var]) *replay.Gradient {
	return replay.New(a)
}

// NewJIT creates a gradient that compiles its recording to Go closures.
func NewJIT(a algo.Algorithm[Var]) *jit.Gradient {
	return jit.New(a)
}

// NewCodegen creates a gradient that translates its recording to JavaScript.
func NewCodegen(a algo.Algorithm[Var]) *codegen.Gradient {
	return codegen.New(a)
}

// NewGraph creates a gradient over a hash-consed, pruned recording.
func NewGraph(a algo.Algorithm[Var]) *graph.Gradient {
	return graph.New(a)
}
