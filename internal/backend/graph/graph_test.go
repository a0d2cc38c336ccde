package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/conformance"
	"github.com/born-ml/gradspeed/internal/backend/graph"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/tape"
)

func newGradient(t *testing.T, name string) *graph.Gradient {
	t.Helper()
	a, err := algo.New[tape.Var](name)
	require.NoError(t, err)
	return graph.New(a)
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

func TestGradient_GraphIsReduced(t *testing.T) {
	a := algo.NewAnODE[tape.Var]()
	require.NoError(t, a.Setup(algo.Option{Size: 6}))
	plain := tape.New()
	replay.Record(plain, a)

	g := newGradient(t, algo.AnODEName)
	require.Zero(t, g.Size())
	require.NoError(t, g.Setup(algo.Option{Size: 6}))
	require.Less(t, g.Size(), plain.Len())
}
