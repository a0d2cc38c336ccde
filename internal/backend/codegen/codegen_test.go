package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/codegen"
	"github.com/born-ml/gradspeed/internal/backend/conformance"
	"github.com/born-ml/gradspeed/internal/tape"
)

func newGradient(t *testing.T, name string) *codegen.Gradient {
	t.Helper()
	a, err := algo.New[tape.Var](name)
	require.NoError(t, err)
	return codegen.New(a)
}

func TestGradient_DetByMinor(t *testing.T) {
	conformance.CheckGradDet(t, newGradient(t, algo.DetByMinorName))
}

func TestGradient_AnODE(t *testing.T) {
	conformance.CheckGradODE(t, newGradient(t, algo.AnODEName))
}

func TestGradient_Domain(t *testing.T) {
	conformance.CheckDomain(t, newGradient(t, algo.DetByMinorName), algo.DetByMinorName, 1, 4, 16, 9)
	conformance.CheckDomain(t, newGradient(t, algo.AnODEName), algo.AnODEName, 1, 6, 3)
}

func TestGradient_Idempotent(t *testing.T) {
	conformance.CheckIdempotent(t, newGradient(t, algo.DetByMinorName), algo.Option{Size: 16})
	conformance.CheckIdempotent(t, newGradient(t, algo.AnODEName), algo.Option{Size: 5, TimeSetup: true})
}

func TestGradient_Errors(t *testing.T) {
	conformance.CheckErrors(t, newGradient(t, algo.DetByMinorName))
}

func TestGradient_SpeedScaling(t *testing.T) {
	g := newGradient(t, algo.DetByMinorName)
	conformance.CheckSpeedDet(t, g, conformance.DefaultRatioLow, conformance.DefaultRatioHigh)
}

func TestGenerate(t *testing.T) {
	tp := tape.New()
	x := tp.Input(1)
	y := tp.Input(2)
	f := tp.Mul(tp.Add(x, tp.Const(0.5)), y)

	src := codegen.Generate(tp, f)
	require.Contains(t, src, "new Float64Array(5)")
	require.Contains(t, src, "v[2] = 0.5;")
	require.Contains(t, src, "v[4] = v[3] * v[1];")
	require.Contains(t, src, "a[4] = 1;")
	require.Contains(t, src, "var x = new Float64Array(xb);")
	require.Contains(t, src, "g[0] = a[0];")
	require.Contains(t, src, "g[1] = a[1];")
}

func TestGradient_Source(t *testing.T) {
	g := newGradient(t, algo.DetByMinorName)
	require.Empty(t, g.Source())
	require.NoError(t, g.Setup(algo.Option{Size: 4}))
	require.True(t, strings.HasPrefix(g.Source(), "(function (xb, gb) {"))
}

func TestGradient_ReusesBuffers(t *testing.T) {
	g := newGradient(t, algo.DetByMinorName)
	require.NoError(t, g.Setup(algo.Option{Size: 4}))

	first, err := g.Evaluate([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, -3, -2, 1}, first)

	second, err := g.Evaluate([]float64{5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, []float64{8, -7, -6, 5}, second)
	assert.Same(t, &first[0], &second[0], "gradient storage is reused")

	// a new size replaces the shared buffers
	require.NoError(t, g.Setup(algo.Option{Size: 9}))
	got, err := g.Evaluate(conformance.Det3x3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, conformance.Det3x3Gradient, got, 1e-10)
}
