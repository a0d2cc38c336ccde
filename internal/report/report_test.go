package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_CreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.csv")

	require.NoError(t, Append(path, Row{
		Backend: "reverse", Algorithm: "det_by_minor", Size: 9, MinTime: 0.5, Rate: 12345.678,
	}))
	require.NoError(t, Append(path, Row{
		Backend: "tape", Algorithm: "an_ode", Size: 4, TimeSetup: true, MinTime: 0.25, Rate: 42,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"backend,algorithm,size,time_setup,min_time,rate\n"+
			"reverse,det_by_minor,9,false,0.5,12345.7\n"+
			"tape,an_ode,4,true,0.25,42\n",
		string(data))
}

func TestAppend_ExistingFileKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.csv")
	prior := "backend,algorithm,size,time_setup,min_time,rate\nold,det_by_minor,4,false,1,2\n"
	require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

	require.NoError(t, Append(path, Row{Backend: "jit", Algorithm: "det_by_minor", Size: 16, MinTime: 1, Rate: 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, prior+"jit,det_by_minor,16,false,1,3\n", string(data))
}

func TestAppend_BadPath(t *testing.T) {
	err := Append(filepath.Join(t.TempDir(), "missing", "speed.csv"), Row{})
	assert.Error(t, err)
}

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.csv")
	rows := []Row{
		{Backend: "double", Algorithm: "det_by_minor", Size: 9, MinTime: 0.5, Rate: 1e6},
		{Backend: "graph", Algorithm: "an_ode", Size: 10, TimeSetup: true, MinTime: 0.1, Rate: 250.5},
	}
	for _, r := range rows {
		require.NoError(t, Append(path, r))
	}

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestReadAll_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("a,b,c,d,e,f\n"), 0o644))
	_, err := ReadAll(bad)
	assert.ErrorIs(t, err, ErrBadHeader)

	row := filepath.Join(dir, "row.csv")
	require.NoError(t, os.WriteFile(row, []byte("backend,algorithm,size,time_setup,min_time,rate\nx,y,nine,false,1,2\n"), 0o644))
	_, err = ReadAll(row)
	assert.ErrorIs(t, err, ErrBadRow)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err := ReadAll(empty)
	assert.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadAll(filepath.Join(dir, "nope.csv"))
	assert.Error(t, err)
}
