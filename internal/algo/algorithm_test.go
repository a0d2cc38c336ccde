package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name    string
		algo    string
		size    int
		wantErr error
	}{
		{"det square", DetByMinorName, 9, nil},
		{"det one", DetByMinorName, 1, nil},
		{"det not square", DetByMinorName, 10, ErrInvalidSize},
		{"det zero", DetByMinorName, 0, ErrInvalidSize},
		{"ode any", AnODEName, 7, nil},
		{"ode negative", AnODEName, -1, ErrInvalidSize},
		{"unknown", "det_by_lu", 9, ErrUnknownAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSize(tt.algo, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		a, err := New[float64](name)
		require.NoError(t, err, name)
		require.NotNil(t, a)
		assert.True(t, Known(name))
	}

	_, err := New[float64]("nope")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.False(t, Known("nope"))
}

func TestDetByMinor_3x3(t *testing.T) {
	det := NewDetByMinor[float64]()
	require.NoError(t, det.Setup(Option{Size: 9}))
	assert.Equal(t, 9, det.Domain())
	assert.Equal(t, 1, det.Range())

	x := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 10,
	}
	y := det.Evaluate(Float{}, x)
	// 1*(50-48) - 2*(40-42) + 3*(32-35) = 2 + 4 - 9
	assert.InDelta(t, -3.0, y[0], 1e-12)
}

func TestDetByMinor_Identity(t *testing.T) {
	det := NewDetByMinor[float64]()
	for ell := 1; ell <= 6; ell++ {
		require.NoError(t, det.Setup(Option{Size: ell * ell}))
		x := make([]float64, ell*ell)
		for i := 0; i < ell; i++ {
			x[i*ell+i] = 2
		}
		y := det.Evaluate(Float{}, x)
		assert.InDelta(t, math.Pow(2, float64(ell)), y[0], 1e-9, "ell = %d", ell)
	}
}

func TestDetByMinor_RowSwapChangesSign(t *testing.T) {
	det := NewDetByMinor[float64]()
	require.NoError(t, det.Setup(Option{Size: 16}))

	x := []float64{
		3, 1, 4, 1,
		5, 9, 2, 6,
		5, 3, 5, 8,
		9, 7, 9, 3,
	}
	swapped := []float64{
		5, 9, 2, 6,
		3, 1, 4, 1,
		5, 3, 5, 8,
		9, 7, 9, 3,
	}
	d1 := det.Evaluate(Float{}, x)[0]
	d2 := det.Evaluate(Float{}, swapped)[0]
	assert.InDelta(t, -d1, d2, 1e-9)
	assert.NotZero(t, d1)
}

func TestDetByMinor_SetupResizes(t *testing.T) {
	det := NewDetByMinor[float64]()
	require.NoError(t, det.Setup(Option{Size: 25}))
	assert.Equal(t, 25, det.Domain())
	require.NoError(t, det.Setup(Option{Size: 4}))
	assert.Equal(t, 4, det.Domain())

	y := det.Evaluate(Float{}, []float64{1, 2, 3, 4})
	assert.InDelta(t, -2.0, y[0], 1e-12)

	err := det.Setup(Option{Size: 5})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestAnODE_ExactSolution(t *testing.T) {
	ode := NewAnODE[float64]()
	require.NoError(t, ode.Setup(Option{Size: 4}))
	assert.Equal(t, 4, ode.Domain())
	assert.Equal(t, 4, ode.Range())

	x := []float64{0.5, 1.5, 2.0, 0.25}
	y := ode.Evaluate(Float{}, x)

	// y[i](2) = x[0]*...*x[i] * 2^(i+1) / (i+1)!
	prod, tp, fact := 1.0, 1.0, 1.0
	for i := range x {
		prod *= x[i]
		tp *= anODEFinal
		fact *= float64(i + 1)
		assert.InDelta(t, prod*tp/fact, y[i], 1e-12, "y[%d]", i)
	}
}

func TestAnODE_Deterministic(t *testing.T) {
	ode := NewAnODE[float64]()
	require.NoError(t, ode.Setup(Option{Size: 8}))

	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	first := append([]float64(nil), ode.Evaluate(Float{}, x)...)
	second := ode.Evaluate(Float{}, x)
	assert.Equal(t, first, second)
}

func TestOption_String(t *testing.T) {
	assert.Equal(t, "size=9 time_setup=true", Option{Size: 9, TimeSetup: true}.String())
}
