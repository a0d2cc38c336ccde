// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gradient defines the contract shared by all gradient backends.
package gradient

import "github.com/born-ml/gradspeed/internal/gradient"

// Gradient computes the gradient of the last output of an algorithm.
type Gradient = gradient.Gradient

// Errors.
var (
	ErrDomain   = gradient.ErrDomain
	ErrNotSetup = gradient.ErrNotSetup
)
