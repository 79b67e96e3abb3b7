package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/openscad"
	"github.com/philipparndt/quadview/pkg/scene"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/philipparndt/quadview/pkg/viewer"
	"github.com/philipparndt/quadview/pkg/watcher"
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

func TestNewWorkspace(t *testing.T) {
	w := NewWorkspace(nil, WithGizmoMode(gizmo.ModeBox))

	require.Len(t, w.Controllers(), 4)
	for i, c := range w.Controllers() {
		assert.Equal(t, viewer.ViewportTypes[i], c.Camera().Type())
		assert.Equal(t, gizmo.ModeBox, c.Gizmo().Mode())
	}
	assert.Nil(t, w.Controller(viewer.ViewportType(99)))
	assert.True(t, w.Snap().IsSnapModeEnabled(snapping.Grid))
	assert.InDelta(t, 8.0, w.Snap().GridSize(), 1e-9)
}

func TestGridSizeWriterPath(t *testing.T) {
	w := NewWorkspace(config.Default())

	w.SetGridSize(5000)
	assert.InDelta(t, config.MaxGridSize, w.Config().GridSize, 1e-9)
	assert.InDelta(t, config.MaxGridSize, w.Snap().GridSize(), 1e-9)

	w.SetGridSize(16)
	assert.True(t, w.ToggleMicrogrid())
	assert.InDelta(t, 2.0, w.Snap().GridSize(), 1e-9)

	assert.False(t, w.ToggleMicrogrid())
	assert.InDelta(t, 16.0, w.Snap().GridSize(), 1e-9)
}

func TestSetSnapThreshold(t *testing.T) {
	w := NewWorkspace(nil)

	w.SetSnapThreshold(2.5)
	assert.InDelta(t, 2.5, w.Config().SnapThreshold, 1e-9)
	assert.InDelta(t, 2.5, w.Snap().Threshold(), 1e-9)

	w.SetSnapThreshold(-1)
	assert.Zero(t, w.Config().SnapThreshold)
	assert.Zero(t, w.Snap().Threshold())
}

func TestSetSnapMode(t *testing.T) {
	w := NewWorkspace(nil)

	w.SetSnapMode(snapping.Point, true)
	assert.True(t, w.Config().Snap.Point)
	assert.True(t, w.Snap().IsSnapModeEnabled(snapping.Point))

	w.SetSnapMode(snapping.Grid, false)
	assert.False(t, w.Config().Snap.Grid)
	assert.False(t, w.Snap().IsSnapModeEnabled(snapping.Grid))
}

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.toml")
	require.NoError(t, os.WriteFile(path, []byte("grid_size = 16.0\n[snap]\npoint = true\n"), 0644))

	w := NewWorkspace(nil)
	require.NoError(t, w.ReloadConfig(path))

	assert.InDelta(t, 16.0, w.Config().GridSize, 1e-9)
	assert.InDelta(t, 16.0, w.Snap().GridSize(), 1e-9)
	assert.True(t, w.Snap().IsSnapModeEnabled(snapping.Point))
	assert.True(t, w.Snap().IsSnapModeEnabled(snapping.Grid))
}

func TestReloadConfigRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.toml")
	require.NoError(t, os.WriteFile(path, []byte("grid_size = [nope"), 0644))

	w := NewWorkspace(nil)
	assert.Error(t, w.ReloadConfig(path))
	assert.InDelta(t, 8.0, w.Config().GridSize, 1e-9)
}

func TestWatchConfigAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.toml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w := NewWorkspace(nil)
	require.NoError(t, w.WatchConfig(path))
	w.Tick()
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestLoadPrimitives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0644))

	w := NewWorkspace(nil)
	summary, err := w.LoadPrimitives(path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Points)
	assert.Equal(t, 3, summary.Edges)
	assert.Equal(t, 1, summary.Faces)

	w.SetSnapMode(snapping.Point, true)
	snapped := w.Snap().SnapPosition(geometry.NewVector3(3.8, 0.1, 0), &geometry.Vector3{X: 3.8, Y: 0.1})
	assert.Equal(t, geometry.NewVector3(4, 0, 0), snapped)

	w.ClearPrimitives()
	points, edges, faces := w.Snap().Counts()
	assert.Zero(t, points+edges+faces)
}

func TestWatchPrimitivesReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0644))

	w := NewWorkspace(nil)
	defer w.Close()

	summary, err := w.WatchPrimitives(path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Points)

	// Same triangle scaled by two: the point count stays, the snap point moves
	scaled := strings.ReplaceAll(triangleSTL, "4", "8")
	require.NoError(t, os.WriteFile(path, []byte(scaled), 0644))

	require.Eventually(t, func() bool {
		w.Tick()
		for _, p := range w.Snap().Points() {
			if p == geometry.NewVector3(8, 0, 0) {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)

	points, _, _ := w.Snap().Counts()
	assert.Equal(t, 3, points)
}

func TestFailedReloadKeepsPrimitives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0644))

	w := NewWorkspace(nil)
	defer w.Close()

	_, err := w.WatchPrimitives(path)
	require.NoError(t, err)
	points, edges, faces := w.Snap().Counts()
	require.Equal(t, []int{3, 3, 1}, []int{points, edges, faces})

	truncated := "solid tri\nfacet normal 0 0 1\n  outer loop\n    vertex 0 0\n"
	require.NoError(t, os.WriteFile(path, []byte(truncated), 0644))

	assert.False(t, w.reloadPrimitives())
	points, edges, faces = w.Snap().Counts()
	assert.Equal(t, []int{3, 3, 1}, []int{points, edges, faces})

	// The queued change takes the same path on Tick
	time.Sleep(3 * watcher.DefaultDebounce)
	assert.False(t, w.Tick())
	points, edges, faces = w.Snap().Counts()
	assert.Equal(t, []int{3, 3, 1}, []int{points, edges, faces})
	assert.Contains(t, w.Snap().Points(), geometry.NewVector3(4, 0, 0))
}

func TestLoadPrimitivesOpenSCADWithoutBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	path := filepath.Join(t.TempDir(), "part.scad")
	require.NoError(t, os.WriteFile(path, []byte("cube(1);\n"), 0644))

	w := NewWorkspace(nil)
	_, err := w.LoadPrimitives(path)
	assert.ErrorIs(t, err, openscad.ErrNotInstalled)
}

func TestLoadPrimitivesUnsupported(t *testing.T) {
	w := NewWorkspace(nil)
	_, err := w.LoadPrimitives("model.obj")
	assert.ErrorIs(t, err, scene.ErrUnsupportedFormat)
}

func TestSelectionObserverPassthrough(t *testing.T) {
	w := NewWorkspace(nil)

	var seen []geometry.Vector3
	w.OnSelectionChanged(func(p geometry.Vector3, selected bool) {
		if selected {
			seen = append(seen, p)
		}
	})

	click(w.Controller(viewer.Front), center, center, viewer.ButtonPrimary, 0)
	assert.Len(t, seen, 1)
}
