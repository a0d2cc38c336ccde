package autodiff_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/algo"
	"github.com/born-ml/gradspeed/autodiff"
	"github.com/born-ml/gradspeed/gradient"
)

func TestBackendsAgree(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 10}
	want := []float64{2, 2, -3, 4, -11, 6, -3, 6, -3}

	dual, err := algo.New[autodiff.Dual](algo.DetByMinorName)
	require.NoError(t, err)
	backends := map[string]gradient.Gradient{"forward": autodiff.NewForward(dual)}
	for name, ctor := range map[string]func(algo.Algorithm[autodiff.Var]) gradient.Gradient{
		"reverse": func(a algo.Algorithm[autodiff.Var]) gradient.Gradient { return autodiff.NewReverse(a) },
		"replay":  func(a algo.Algorithm[autodiff.Var]) gradient.Gradient { return autodiff.NewReplay(a) },
		"jit":     func(a algo.Algorithm[autodiff.Var]) gradient.Gradient { return autodiff.NewJIT(a) },
		"codegen": func(a algo.Algorithm[autodiff.Var]) gradient.Gradient { return autodiff.NewCodegen(a) },
		"graph":   func(a algo.Algorithm[autodiff.Var]) gradient.Gradient { return autodiff.NewGraph(a) },
	} {
		a, err := algo.New[autodiff.Var](algo.DetByMinorName)
		require.NoError(t, err)
		backends[name] = ctor(a)
	}

	for name, g := range backends {
		require.NoError(t, g.Setup(algo.Option{Size: 9}), name)
		got, err := g.Evaluate(x)
		require.NoError(t, err, name)
		assert.InDeltaSlice(t, want, got, 1e-10, name)
	}
}

func TestNotSetup(t *testing.T) {
	a, err := algo.New[autodiff.Var](algo.AnODEName)
	require.NoError(t, err)
	_, err = autodiff.NewReplay(a).Evaluate([]float64{1})
	assert.ErrorIs(t, err, gradient.ErrNotSetup)
}

func TestTape(t *testing.T) {
	tp := autodiff.NewTape(autodiff.WithCSE())
	x := tp.Input(3)
	y := tp.Mul(x, x)
	assert.Equal(t, 9.0, tp.Value(y))
	assert.True(t, tp.CSE())
}

func Example() {
	a, _ := algo.New[autodiff.Var](algo.DetByMinorName)
	g := autodiff.NewReplay(a)
	_ = g.Setup(algo.Option{Size: 4})

	grad, _ := g.Evaluate([]float64{1, 2, 3, 4})
	fmt.Println(grad)
	// Output: [4 -3 -2 1]
}
