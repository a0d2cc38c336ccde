package forward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/conformance"
	"github.com/born-ml/gradspeed/internal/backend/forward"
)

func newGradient(t *testing.T, name string) *forward.Gradient {
	t.Helper()
	a, err := algo.New[forward.Dual](name)
	require.NoError(t, err)
	return forward.New(a)
}

func TestArena(t *testing.T) {
	ar := forward.NewArena(2)
	x := ar.Input(0, 3)
	y := ar.Input(1, 4)

	// f = x*y / (x + 1) - 2
	f := ar.Sub(ar.Div(ar.Mul(x, y), ar.Add(x, ar.Const(1))), ar.Const(2))

	assert.InDelta(t, 12.0/4.0-2, ar.Value(f), 1e-12)
	// df/dx = y/(x+1)^2, df/dy = x/(x+1)
	assert.InDeltaSlice(t, []float64{4.0 / 16.0, 3.0 / 4.0}, ar.Tangent(f), 1e-12)
	assert.Equal(t, 8, ar.Len())

	ar.Reset()
	assert.Equal(t, 0, ar.Len())
	c := ar.Const(7)
	assert.Equal(t, []float64{0, 0}, ar.Tangent(c), "reused slots are cleared")
}

func TestGradient_DetByMinor(t *testing.T) {
	conformance.CheckGradDet(t, newGradient(t, algo.DetByMinorName))
}

func TestGradient_AnODE(t *testing.T) {
	conformance.CheckGradODE(t, newGradient(t, algo.AnODEName))
}

func TestGradient_Domain(t *testing.T) {
	conformance.CheckDomain(t, newGradient(t, algo.DetByMinorName), algo.DetByMinorName, 1, 4, 16)
	conformance.CheckDomain(t, newGradient(t, algo.AnODEName), algo.AnODEName, 2, 7)
}

func TestGradient_Idempotent(t *testing.T) {
	conformance.CheckIdempotent(t, newGradient(t, algo.DetByMinorName), algo.Option{Size: 9})
}

func TestGradient_Errors(t *testing.T) {
	conformance.CheckErrors(t, newGradient(t, algo.DetByMinorName))
}

func TestGradient_SpeedScaling(t *testing.T) {
	// every operation also carries n tangents, so the work grows faster than
	// ell; only the loose bounds apply
	g := newGradient(t, algo.DetByMinorName)
	conformance.CheckSpeedDet(t, g, 0.1, 6.0)
}
