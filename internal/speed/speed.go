// Package speed measures the throughput of a repeatable unit of work.
//
// Measure runs the work with a doubling repetition count until the elapsed
// wall-clock time reaches a minimum, so fixed overhead and timer resolution
// are amortized without knowing the per-call cost in advance. FunSpeed builds
// the unit of work from a Target (a gradient or a plain function) and an
// option.
package speed

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/born-ml/gradspeed/internal/algo"
)

// MaxMinTime is the largest accepted minimum time.
const MaxMinTime = time.Second

// Common errors.
var (
	ErrMinTime = errors.New("min_time must be greater than zero and at most one second")
	ErrTiming  = errors.New("timed work failed")
)

// Result is the outcome of one measurement.
type Result struct {
	Repetitions int           // repetitions in the final (accepted) round
	Elapsed     time.Duration // elapsed time of the final round
	Rate        float64       // Repetitions per second
}

// Target is anything FunSpeed can time: a gradient or a plain function.
type Target interface {
	Setup(opt algo.Option) error
	Domain() int
	Evaluate(x []float64) ([]float64, error)
}

// Work runs a unit of work reps times.
type Work func(reps int) error

// clock is the time source; replaced in tests.
var clock = time.Now

// Measure times work with a doubling repetition count.
//
// Algorithm:
//  1. Start with one repetition
//  2. Time work(reps)
//  3. If the elapsed time is below minTime, double reps and go to 2,
//     discarding the previous timing
//  4. Return reps / elapsed
//
// A failing work call aborts the measurement with an error wrapping ErrTiming.
// A single call slower than minTime is accepted as is.
func Measure(minTime time.Duration, work Work) (Result, error) {
	if err := CheckMinTime(minTime); err != nil {
		return Result{}, err
	}
	reps := 1
	for {
		start := clock()
		if err := work(reps); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrTiming, err)
		}
		elapsed := clock().Sub(start)
		if elapsed >= minTime {
			return Result{
				Repetitions: reps,
				Elapsed:     elapsed,
				Rate:        float64(reps) / elapsed.Seconds(),
			}, nil
		}
		if reps > math.MaxInt/2 {
			return Result{}, fmt.Errorf("%w: %d repetitions took %v", ErrTiming, reps, elapsed)
		}
		reps *= 2
	}
}

// CheckMinTime returns ErrMinTime unless 0 < minTime <= one second.
func CheckMinTime(minTime time.Duration) error {
	if minTime <= 0 || minTime > MaxMinTime {
		return fmt.Errorf("%w: got %v", ErrMinTime, minTime)
	}
	return nil
}

// FunSpeed measures the rate at which target can be evaluated for opt.
//
// If opt.TimeSetup is false, Setup runs once outside the timed region and
// only Evaluate is timed. Otherwise every repetition calls Setup(opt) and then
// Evaluate, so the rate reflects configuration plus evaluation cost.
func FunSpeed(target Target, opt algo.Option, minTime time.Duration) (Result, error) {
	if err := CheckMinTime(minTime); err != nil {
		return Result{}, err
	}
	if err := target.Setup(opt); err != nil {
		return Result{}, fmt.Errorf("%w: setup: %w", ErrTiming, err)
	}
	x := Argument(target.Domain())

	var work Work
	if opt.TimeSetup {
		work = func(reps int) error {
			for range reps {
				if err := target.Setup(opt); err != nil {
					return err
				}
				if _, err := target.Evaluate(x); err != nil {
					return err
				}
			}
			return nil
		}
	} else {
		work = func(reps int) error {
			for range reps {
				if _, err := target.Evaluate(x); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return Measure(minTime, work)
}

// Argument returns n deterministic pseudo-random values in [0, 1).
func Argument(n int) []float64 {
	rng := rand.New(rand.NewPCG(1, 2))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}
	return x
}
