package gradient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInput(t *testing.T) {
	assert.ErrorIs(t, CheckInput(false, 2, []float64{1, 2}), ErrNotSetup)
	assert.ErrorIs(t, CheckInput(true, 3, []float64{1, 2}), ErrDomain)
	assert.NoError(t, CheckInput(true, 2, []float64{1, 2}))
}
