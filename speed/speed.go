// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package speed measures evaluation rates with a doubling repetition loop.
//
// Example:
//
//	res, err := speed.FunSpeed(g, algo.Option{Size: 16}, 500*time.Millisecond)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%.0f gradients/s\n", res.Rate)
package speed

import (
	"time"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/speed"
)

// Result is the outcome of one measurement.
type Result = speed.Result

// Target is anything that can be timed: a gradient or a plain function.
type Target = speed.Target

// Work runs a unit of work reps times.
type Work = speed.Work

// MaxMinTime is the largest accepted minimum time.
const MaxMinTime = speed.MaxMinTime

// Errors.
var (
	ErrMinTime = speed.ErrMinTime
	ErrTiming  = speed.ErrTiming
)

// Measure times work with a doubling repetition count until at least
// minTime has elapsed.
func Measure(minTime time.Duration, work Work) (Result, error) {
	return speed.Measure(minTime, work)
}

// FunSpeed measures the rate at which target can be evaluated for opt.
func FunSpeed(target Target, opt algo.Option, minTime time.Duration) (Result, error) {
	return speed.FunSpeed(target, opt, minTime)
}
