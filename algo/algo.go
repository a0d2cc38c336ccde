// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package algo defines the test algorithms whose gradients are measured.
//
// An Algorithm is written once against Arithmetic and evaluated over any
// scalar type: plain float64, tape slots or forward mode duals.
//
// Available algorithms:
//   - det_by_minor: determinant of an ell x ell matrix by expansion by minors
//   - an_ode: fixed step Runge-Kutta solution of a linear ODE system
package algo

import "github.com/born-ml/gradspeed/internal/algo"

// Algorithm is a test function evaluated over the scalar type S.
type Algorithm[S any] = algo.Algorithm[S]

// Arithmetic is the set of scalar operations an algorithm may use.
type Arithmetic[S any] = algo.Arithmetic[S]

// Float is the float64 Arithmetic.
type Float = algo.Float

// Option configures an algorithm or a gradient.
type Option = algo.Option

// Algorithm names.
const (
	DetByMinorName = algo.DetByMinorName
	AnODEName      = algo.AnODEName
)

// Errors.
var (
	ErrInvalidSize      = algo.ErrInvalidSize
	ErrUnknownAlgorithm = algo.ErrUnknownAlgorithm
)

// New constructs the algorithm called name for the scalar type S.
func New[S any](name string) (Algorithm[S], error) {
	return algo.New[S](name)
}

// Names returns the known algorithm names.
func Names() []string {
	return algo.Names()
}

// CheckSize validates size for the algorithm called name.
func CheckSize(name string, size int) error {
	return algo.CheckSize(name, size)
}
