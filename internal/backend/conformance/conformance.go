// Package conformance holds the checks every gradient backend must pass.
// Backend tests call them with their own Gradient instances.
package conformance

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/gradient"
	"github.com/born-ml/gradspeed/internal/speed"
)

// Det3x3 is the argument of the 3x3 determinant check, in row major order.
var Det3x3 = []float64{
	1, 2, 3,
	4, 5, 6,
	7, 8, 10,
}

// Det3x3Gradient is the cofactor matrix of Det3x3.
var Det3x3Gradient = []float64{
	+(5*10 - 6*8), -(4*10 - 6*7), +(4*8 - 5*7),
	-(2*10 - 3*8), +(1*10 - 3*7), -(1*8 - 2*7),
	+(2*6 - 3*5), -(1*6 - 3*4), +(1*5 - 2*4),
}

// CheckGradDet checks the gradient of det_by_minor for the 3x3 matrix.
// g must wrap det_by_minor.
func CheckGradDet(t *testing.T, g gradient.Gradient) {
	t.Helper()
	opt := algo.Option{Size: 9}
	require.NoError(t, g.Setup(opt))
	assert.Equal(t, opt, g.Option())
	assert.Equal(t, 9, g.Domain())

	got, err := g.Evaluate(Det3x3)
	require.NoError(t, err)
	require.Len(t, got, 9)
	for j := range Det3x3Gradient {
		assert.InDelta(t, Det3x3Gradient[j], got[j], 1e-10, "g[%d]", j)
	}
}

// CheckGradODE checks the gradient of the last output of an_ode against its
// exact solution y[3](2) = x0*x1*x2*x3 * 2^4 / 4!. g must wrap an_ode.
func CheckGradODE(t *testing.T, g gradient.Gradient) {
	t.Helper()
	require.NoError(t, g.Setup(algo.Option{Size: 4}))
	x := []float64{0.5, 1.5, 2.0, 0.25}

	got, err := g.Evaluate(x)
	require.NoError(t, err)
	require.Len(t, got, 4)

	scale := 16.0 / 24.0
	for j := range x {
		want := scale
		for i := range x {
			if i != j {
				want *= x[i]
			}
		}
		assert.InDelta(t, want, got[j], 1e-12, "g[%d]", j)
	}
}

// CheckDomain checks that Domain follows the algorithm after every Setup.
func CheckDomain(t *testing.T, g gradient.Gradient, name string, sizes ...int) {
	t.Helper()
	for _, size := range sizes {
		a, err := algo.New[float64](name)
		require.NoError(t, err)
		opt := algo.Option{Size: size}
		require.NoError(t, a.Setup(opt))
		require.NoError(t, g.Setup(opt))
		assert.Equal(t, a.Domain(), g.Domain(), "%s size %d", name, size)

		got, err := g.Evaluate(speed.Argument(g.Domain()))
		require.NoError(t, err)
		assert.Len(t, got, a.Domain())
	}
}

// CheckIdempotent checks that repeated Setup with the same option does not
// change the domain or the result.
func CheckIdempotent(t *testing.T, g gradient.Gradient, opt algo.Option) {
	t.Helper()
	require.NoError(t, g.Setup(opt))
	x := speed.Argument(g.Domain())
	first, err := g.Evaluate(x)
	require.NoError(t, err)
	first = append([]float64(nil), first...)
	domain := g.Domain()

	require.NoError(t, g.Setup(opt))
	assert.Equal(t, domain, g.Domain())
	second, err := g.Evaluate(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, first, second, 1e-12)
}

// CheckErrors checks the failure modes shared by every backend.
func CheckErrors(t *testing.T, g gradient.Gradient) {
	t.Helper()
	_, err := g.Evaluate([]float64{1})
	assert.ErrorIs(t, err, gradient.ErrNotSetup)

	require.NoError(t, g.Setup(algo.Option{Size: 4}))
	_, err = g.Evaluate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, gradient.ErrDomain)

	err = g.Setup(algo.Option{Size: 5})
	assert.ErrorIs(t, err, algo.ErrInvalidSize)
}

// Ratio bounds of CheckSpeedDet.
const (
	DefaultRatioLow  = 0.1
	DefaultRatioHigh = 3.0
)

// CheckSpeedDet checks that the rate of a det_by_minor gradient scales like
// the number of operations: going from ell-1 to ell multiplies the work by
// about ell, so previous_rate / (ell * rate) must stay within (low, high).
// It is skipped in short mode.
func CheckSpeedDet(t *testing.T, g gradient.Gradient, low, high float64) {
	t.Helper()
	if testing.Short() {
		t.Skip("timing check skipped in short mode")
	}
	minTime := 200 * time.Millisecond
	previous := 0.0
	for ell := 5; ell < 8; ell++ {
		res, err := speed.FunSpeed(g, algo.Option{Size: ell * ell}, minTime)
		require.NoError(t, err)
		require.False(t, math.IsInf(res.Rate, 0))

		if previous != 0 {
			ratio := previous / (float64(ell) * res.Rate)
			assert.True(t, low < ratio && ratio < high, "ell = %d: ratio = %f", ell, ratio)
		}
		previous = res.Rate
	}
}
