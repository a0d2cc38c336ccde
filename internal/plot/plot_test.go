package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradspeed/internal/report"
)

var rows = []report.Row{
	{Backend: "tape", Algorithm: "det_by_minor", Size: 16, Rate: 100},
	{Backend: "tape", Algorithm: "det_by_minor", Size: 9, Rate: 900},
	{Backend: "jit", Algorithm: "det_by_minor", Size: 9, Rate: 2000},
	{Backend: "tape", Algorithm: "det_by_minor", Size: 9, TimeSetup: true, Rate: 300},
	{Backend: "tape", Algorithm: "an_ode", Size: 4, Rate: 5},
	{Backend: "tape", Algorithm: "det_by_minor", Size: 9, Rate: 950},
}

func TestCollect(t *testing.T) {
	got := Collect(rows, "det_by_minor")
	assert.Equal(t, []Series{
		{Name: "tape", Points: []Point{{9, 950}, {16, 100}}},
		{Name: "jit", Points: []Point{{9, 2000}}},
		{Name: "tape (with setup)", Points: []Point{{9, 300}}},
	}, got)

	assert.Empty(t, Collect(rows, "fft"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rows, "det_by_minor"))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "tape (with setup)")
	assert.Contains(t, html, "jit")
	assert.NotContains(t, html, "an_ode")
}

func TestRender_NoRows(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, rows, "fft")
	assert.ErrorIs(t, err, ErrNoRows)
	assert.Zero(t, buf.Len())
}
