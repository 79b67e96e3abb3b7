package snapping

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		name     string
		in       geometry.Vector3
		grid     float64
		expected geometry.Vector3
	}{
		{"half rounds up", vec(16, 0, 0), 32, vec(32, 0, 0)},
		{"below half rounds down", vec(15, 0, 0), 32, vec(0, 0, 0)},
		{"negative half rounds away from zero", vec(-16, 0, 0), 32, vec(-32, 0, 0)},
		{"each axis independent", vec(1.4, 2.6, -0.5), 1, vec(1, 3, -1)},
		{"zero grid is identity", vec(1.23, 4.56, 7.89), 0, vec(1.23, 4.56, 7.89)},
		{"negative grid is identity", vec(1.23, 4.56, 7.89), -8, vec(1.23, 4.56, 7.89)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnapToGrid(tt.in, tt.grid))
		})
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grids := []float64{0.125, 0.3, 1, 8, 32, 1024}

	for i := 0; i < 500; i++ {
		p := vec(rng.Float64()*2000-1000, rng.Float64()*2000-1000, rng.Float64()*2000-1000)
		g := grids[i%len(grids)]
		once := SnapToGrid(p, g)
		require.Equal(t, once, SnapToGrid(once, g), "p=%v g=%v", p, g)
	}
}

func TestDefaults(t *testing.T) {
	s := NewService()

	assert.True(t, s.IsSnapModeEnabled(Grid))
	for _, m := range []Mode{Point, Edge, Face, Perpendicular} {
		assert.False(t, s.IsSnapModeEnabled(m), m.String())
	}
	assert.False(t, s.IsSnapModeEnabled(Mode(42)))
}

func TestSnapPositionWithoutCursorUsesGrid(t *testing.T) {
	s := NewService(WithGridSize(8))
	assert.Equal(t, vec(8, 0, -8), s.SnapPosition(vec(5, 1, -4.5), nil))

	s.SetSnapMode(Grid, false)
	assert.Equal(t, vec(5, 1, -4.5), s.SnapPosition(vec(5, 1, -4.5), nil))
}

func TestBestTargetIsDistanceOrdered(t *testing.T) {
	orders := [][]Mode{{Point, Edge}, {Edge, Point}}

	for _, order := range orders {
		s := NewService(WithThreshold(1.0))
		s.SetSnapMode(Grid, false)
		for _, m := range order {
			s.SetSnapMode(m, true)
		}
		s.RegisterPoint(vec(0.3, 0, 0))
		s.RegisterEdge(vec(-5, 0.6, 0), vec(5, 0.6, 0))

		target := s.FindBestSnapTarget(vec(0, 0, 0), vec(0, 0, 0))
		require.True(t, target.OK())
		assert.Equal(t, Point, target.Mode, "enable order %v", order)
		assert.Equal(t, vec(0.3, 0, 0), target.Position)
		assert.InDelta(t, 0.3, target.Distance, 1e-12)
	}
}

func TestEdgeSnapClampsToSegment(t *testing.T) {
	s := NewService(WithModes(Edge), WithThreshold(5))
	s.SetSnapMode(Grid, false)
	s.RegisterEdge(vec(0, 0, 0), vec(10, 0, 0))

	target := s.FindBestSnapTarget(vec(12, 1, 0), vec(12, 1, 0))
	require.True(t, target.OK())
	assert.Equal(t, vec(10, 0, 0), target.Position)
	assert.Equal(t, "edge", target.Label)
}

func TestFaceSnapUsesSupportingPlane(t *testing.T) {
	s := NewService(WithModes(Face), WithThreshold(1))
	s.SetSnapMode(Grid, false)
	s.RegisterFace([]geometry.Vector3{vec(0, 0, 0), vec(1, 0, 0), vec(1, 0, 1), vec(0, 0, 1)})

	// far outside the polygon but close to its plane
	target := s.FindBestSnapTarget(vec(50, 0.5, 50), vec(50, 0.5, 50))
	require.True(t, target.OK())
	assert.Equal(t, Face, target.Mode)
	assert.InDelta(t, 0, target.Position.Y, 1e-12)
	assert.InDelta(t, 50, target.Position.X, 1e-12)
}

func TestThresholdExclusion(t *testing.T) {
	s := NewService(WithModes(Point, Edge), WithThreshold(0.5), WithGridSize(32))
	s.RegisterPoint(vec(3, 0, 0))
	s.RegisterEdge(vec(0, 4, 0), vec(1, 4, 0))

	input := vec(10, 10, 10)
	cursor := vec(0, 0, 0)
	assert.Equal(t, input, s.SnapPosition(input, &cursor))

	target := s.FindBestSnapTarget(input, cursor)
	assert.False(t, target.OK())
	assert.Equal(t, "none", target.Label)
}

func TestGridOverridesOnlyWhenStrictlyCloser(t *testing.T) {
	s := NewService(WithModes(Point), WithThreshold(1), WithGridSize(1))
	s.RegisterPoint(vec(0.5, 0, 0))

	// grid candidate (0,0,0) is 0.25 from input, point candidate 0.25 from cursor
	input := vec(0.25, 0, 0)
	target := s.FindBestSnapTarget(input, vec(0.75, 0, 0))
	assert.Equal(t, Point, target.Mode)

	// grid strictly closer
	input = vec(0.1, 0, 0)
	target = s.FindBestSnapTarget(input, vec(0.75, 0, 0))
	assert.Equal(t, Grid, target.Mode)
	assert.Equal(t, vec(0, 0, 0), target.Position)
}

func TestPerpendicularNeverSnaps(t *testing.T) {
	s := NewService(WithModes(Perpendicular))
	s.SetSnapMode(Grid, false)
	s.RegisterPoint(vec(0, 0, 0))

	target := s.FindBestSnapTarget(vec(0.1, 0, 0), vec(0.1, 0, 0))
	assert.False(t, target.OK())
}

func TestRegistryDeduplicates(t *testing.T) {
	s := NewService()
	s.RegisterPoint(vec(1, 2, 3))
	s.RegisterPoint(vec(1, 2, 3))
	s.RegisterEdge(vec(0, 0, 0), vec(1, 0, 0))
	s.RegisterEdge(vec(0, 0, 0), vec(1, 0, 0))
	s.RegisterEdge(vec(1, 0, 0), vec(0, 0, 0))
	face := []geometry.Vector3{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)}
	s.RegisterFace(face)
	s.RegisterFace(face)
	s.RegisterFace(face[:2])

	points, edges, faces := s.Counts()
	assert.Equal(t, 1, points)
	assert.Equal(t, 2, edges, "edges are ordered pairs")
	assert.Equal(t, 1, faces)

	s.ClearSnapTargets()
	points, edges, faces = s.Counts()
	assert.Zero(t, points+edges+faces)

	s.RegisterPoint(vec(1, 2, 3))
	points, _, _ = s.Counts()
	assert.Equal(t, 1, points, "cleared entries can be registered again")
}

func TestRegistryFaceKeyTreatsNegativeZeroAsZero(t *testing.T) {
	s := NewService()
	s.RegisterFace([]geometry.Vector3{vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)})
	s.RegisterFace([]geometry.Vector3{vec(math.Copysign(0, -1), 0, 0), vec(1, 0, 0), vec(0, 1, 0)})
	s.RegisterFace([]geometry.Vector3{vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 0)})

	_, _, faces := s.Counts()
	assert.Equal(t, 2, faces, "loops are ordered, -0 equals 0")
}

func TestRegistryScalesLinearly(t *testing.T) {
	const n = 50000
	s := NewService()

	start := time.Now()
	for i := 0; i < n; i++ {
		x := float64(i)
		s.RegisterPoint(vec(x, 0, 0))
		s.RegisterEdge(vec(x, 0, 0), vec(x+1, 0, 0))
		s.RegisterFace([]geometry.Vector3{vec(x, 0, 0), vec(x+1, 0, 0), vec(x, 1, 0)})
	}
	elapsed := time.Since(start)

	points, edges, faces := s.Counts()
	assert.Equal(t, n, points)
	assert.Equal(t, n, edges)
	assert.Equal(t, n, faces)
	assert.Less(t, elapsed, 2*time.Second, "registering %d primitives took %s", n, elapsed)
}

func TestApplyConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Snap.Grid = false
	cfg.Snap.Edge = true
	cfg.SnapThreshold = 2.5
	cfg.SetGridSize(16)
	cfg.SetMicrogrid(true)

	s := NewService()
	s.ApplyConfig(cfg)

	assert.False(t, s.IsSnapModeEnabled(Grid))
	assert.True(t, s.IsSnapModeEnabled(Edge))
	assert.Equal(t, 2.5, s.Threshold())
	assert.Equal(t, 2.0, s.GridSize())
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMode("vertex")
	assert.Error(t, err)
}
