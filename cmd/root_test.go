package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleSTL = `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 4 0 0
    vertex 0 4 0
  endloop
endfacet
endsolid tri
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSTL(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0644))
	return path
}

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "top pane world to pixel",
			args:     []string{"project", "--view", "top", "--width", "512", "--height", "512", "--x", "8"},
			expected: "pixel: (320.000, 256.000) visible: true",
		},
		{
			name:     "front pane pixel to world",
			args:     []string{"project", "--view", "front", "--width", "512", "--height", "512", "--inverse", "--px", "320", "--py", "256"},
			expected: "world: (8.0000, 0.0000, 0.0000)",
		},
		{
			name:     "perspective target lands in the center",
			args:     []string{"project", "--width", "800", "--height", "600"},
			expected: "pixel: (400.000, 300.000) visible: true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestProjectRejectsUnknownView(t *testing.T) {
	_, err := run(t, "project", "--view", "bottom")
	assert.Error(t, err)
}

func TestSnapToGrid(t *testing.T) {
	out, err := run(t, "snap", "--at", "7.6,0.2,0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "position: (8.0000, 0.0000, 0.0000)")
}

func TestSnapToMeshPoint(t *testing.T) {
	path := writeSTL(t)

	out, err := run(t, "snap", path, "--at", "3.8,0.1,0", "--cursor", "3.8,0.1,0", "--modes", "point, grid")
	require.NoError(t, err)
	assert.Contains(t, out, "position: (4.0000, 0.0000, 0.0000)")
	assert.Contains(t, out, "mode:     point")
}

func TestSnapRejectsBadInput(t *testing.T) {
	_, err := run(t, "snap", "--at", "1,2")
	assert.Error(t, err)

	_, err = run(t, "snap", "--at", "1,2,3", "--modes", "magnet")
	assert.Error(t, err)
}

func TestHit(t *testing.T) {
	out, err := run(t, "hit", "--view", "top", "--width", "512", "--height", "512", "--px", "296", "--py", "256")
	require.NoError(t, err)
	assert.Contains(t, out, "size 10.0000")
	assert.Contains(t, out, "hit:   x t=64.0000")

	out, err = run(t, "hit", "--view", "top", "--width", "512", "--height", "512", "--px", "10", "--py", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "hit:   none")
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", writeSTL(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Name: tri")
	assert.Contains(t, out, "Points: 3")
	assert.Contains(t, out, "Faces: 1")
	assert.Contains(t, out, "Max: (4.0000, 4.0000, 0.0000)")
	assert.Contains(t, out, "Surface Area:")
	assert.Contains(t, out, "Longest #1:")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.toml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	_, err = run(t, "config", "init", path)
	assert.Error(t, err)

	_, err = run(t, "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err = run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "grid_size = 8.0")

	out, err = run(t, "config", "show", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "snap_threshold: 1")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "info", "x.stl")
	assert.Error(t, err)
}

func TestParseVector(t *testing.T) {
	v, err := parseVector(" 1, -2.5 ,3")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.X)
	assert.Equal(t, -2.5, v.Y)
	assert.Equal(t, 3.0, v.Z)

	_, err = parseVector("1,a,3")
	assert.Error(t, err)
}
