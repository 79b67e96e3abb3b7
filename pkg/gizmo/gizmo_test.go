package gizmo

import (
	"math"
	"testing"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycles(t *testing.T) {
	g := New(WithMode(ModeNone))

	assert.Equal(t, ModeBox, g.CycleMode())
	assert.Equal(t, ModeHandle, g.CycleMode())
	assert.Equal(t, ModeNone, g.CycleMode())

	assert.Equal(t, Rotate, g.CycleOperation())
	assert.Equal(t, Scale, g.CycleOperation())
	assert.Equal(t, Translate, g.CycleOperation())

	assert.Equal(t, Local, g.ToggleSpace())
	assert.Equal(t, Global, g.ToggleSpace())
}

func TestOperationChangedOnlyFromGesture(t *testing.T) {
	g := New()
	var seen []Operation
	g.OnOperationChanged(func(op Operation) { seen = append(seen, op) })

	g.CycleOperation()
	g.SetOperation(Translate)
	assert.Empty(t, seen)

	op, ok := g.CycleOperationFromGesture()
	require.True(t, ok)
	assert.Equal(t, Rotate, op)
	assert.Equal(t, []Operation{Rotate}, seen)

	g.SetMode(ModeBox)
	_, ok = g.CycleOperationFromGesture()
	assert.False(t, ok)
	assert.Equal(t, Rotate, g.Operation())
	assert.Len(t, seen, 1)
}

func TestAxisLocks(t *testing.T) {
	g := New()
	g.SetAxisLocked(1, true)
	g.SetAxisLocked(7, true)

	assert.False(t, g.IsAxisLocked(0))
	assert.True(t, g.IsAxisLocked(1))
	assert.True(t, g.IsAxisLocked(-1))
}

func TestSync(t *testing.T) {
	g := New()
	g.Sync(geometry.NewVector3(3.4, 5.6, -1.2), 2, true)
	assert.Equal(t, geometry.NewVector3(4, 6, -2), g.Position())

	g.Sync(geometry.NewVector3(3.4, 5.6, -1.2), 2, false)
	assert.Equal(t, geometry.NewVector3(3.4, 5.6, -1.2), g.Position())
}

// tieBreakRay passes exactly through the X arm at t=2 and the Y arm at t=5
func tieBreakRay() (origin, dir geometry.Vector3) {
	a := 3 / math.Sqrt2
	dir = geometry.NewVector3(-a, a, 0).Mul(1.0 / 3.0)
	origin = geometry.NewVector3(5*a/3, -2*a/3, 0)
	return origin, dir
}

func TestHitTestTieBreakPrefersClosest(t *testing.T) {
	g := New(WithSize(10))
	origin, dir := tieBreakRay()

	hit, ok := g.HitTest(origin, dir)
	require.True(t, ok)
	assert.Equal(t, 0, hit.Axis)
	assert.InDelta(t, 2.0, hit.T, 1e-9)

	g.SetAxisLocked(0, true)
	hit, ok = g.HitTest(origin, dir)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Axis)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}

func TestHitTestTranslate(t *testing.T) {
	g := New(WithSize(2))
	down := geometry.NewVector3(0, -1, 0)

	tests := []struct {
		name   string
		origin geometry.Vector3
		axis   int
		hit    bool
	}{
		{"on X arm", geometry.NewVector3(1, 10, 0.1), 0, true},
		{"on Z arm", geometry.NewVector3(0.05, 10, 1.5), 2, true},
		{"beyond arm end", geometry.NewVector3(2.5, 10, 0), NoAxis, false},
		{"behind origin side", geometry.NewVector3(-1, 10, 0), NoAxis, false},
		{"outside threshold", geometry.NewVector3(1, 10, 0.3), NoAxis, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := g.HitTest(tt.origin, down)
			assert.Equal(t, tt.hit, ok)
			assert.Equal(t, tt.axis, hit.Axis)
		})
	}
}

func TestHitTestRequiresHitInFrontOfRay(t *testing.T) {
	g := New(WithSize(2))
	hit, ok := g.HitTest(geometry.NewVector3(1, 10, 0), geometry.NewVector3(0, 1, 0))
	assert.False(t, ok)
	assert.Equal(t, NoAxis, hit.Axis)
}

func TestHitTestPreconditions(t *testing.T) {
	origin := geometry.NewVector3(1, 10, 0)
	down := geometry.NewVector3(0, -1, 0)

	g := New(WithSize(2), WithMode(ModeBox))
	_, ok := g.HitTest(origin, down)
	assert.False(t, ok, "only Handle mode hit tests")

	g = New(WithSize(2))
	_, ok = g.HitTest(origin, geometry.Vector3{})
	assert.False(t, ok, "zero direction")

	g = New(WithSize(0))
	_, ok = g.HitTest(origin, down)
	assert.False(t, ok, "zero size")
}

func TestHitTestRotateRings(t *testing.T) {
	g := New(WithSize(2), WithOperation(Rotate))

	// straight down onto the Y ring (XZ plane) at radius 2
	hit, ok := g.HitTest(geometry.NewVector3(2, 10, 0.0), geometry.NewVector3(0, -1, 0))
	require.True(t, ok)
	assert.Equal(t, 1, hit.Axis)
	assert.InDelta(t, 10, hit.T, 1e-9)

	// inside the ring, away from the rim
	_, ok = g.HitTest(geometry.NewVector3(0.5, 10, 0.5), geometry.NewVector3(0, -1, 0))
	assert.False(t, ok)

	// a ray lying in the ring plane is parallel and skipped
	g.SetAxisLocked(0, true)
	g.SetAxisLocked(2, true)
	_, ok = g.HitTest(geometry.NewVector3(-10, 0, 2), geometry.NewVector3(1, 0, 0))
	assert.False(t, ok)
}

func TestHitTestLocalSpace(t *testing.T) {
	g := New(WithSize(2), WithSpace(Local))
	// rotate the basis 90 degrees about Y: local X points along -Z
	g.SetBasis(geometry.NewVector3(0, 0, -1), geometry.AxisY, geometry.AxisX)

	hit, ok := g.HitTest(geometry.NewVector3(0, 10, -1), geometry.NewVector3(0, -1, 0))
	require.True(t, ok)
	assert.Equal(t, 0, hit.Axis)
}

func TestProjectToAxis(t *testing.T) {
	g := New()
	g.SetPosition(geometry.NewVector3(1, 2, 3))

	p := geometry.NewVector3(7, 8, 9)
	assert.Equal(t, geometry.NewVector3(7, 2, 3), g.ProjectToAxis(p, 0))
	assert.Equal(t, geometry.NewVector3(1, 8, 3), g.ProjectToAxis(p, 1))
	assert.Equal(t, geometry.NewVector3(1, 2, 9), g.ProjectToAxis(p, 2))
	assert.Equal(t, p, g.ProjectToAxis(p, NoAxis))
}

func TestCalculateScreenSize(t *testing.T) {
	cam := viewer.NewCamera(viewer.Front, nil)
	cam.SetViewport(512, 512)
	view, proj := cam.Matrices()

	g := New()
	// one world unit spans height/distance pixels in an ortho pane
	assert.InDelta(t, 512/viewer.DefaultOrthoDistance, g.CalculateScreenSize(view, proj, 512, 512), 1e-6)
	assert.InDelta(t, 80.0, g.WorldSize(view, proj, 512, 512, 80)*512/viewer.DefaultOrthoDistance, 1e-6)
}

func TestCalculateScreenSizeFallback(t *testing.T) {
	cam := viewer.NewCamera(viewer.Perspective, nil)
	view, proj := cam.Matrices()
	forward, _, _ := cam.Basis()

	g := New()
	g.SetPosition(cam.Eye().Sub(forward.Mul(5)))
	assert.Equal(t, FallbackScreenSize, g.CalculateScreenSize(view, proj, 800, 600))
}

func TestScreenSizeShrinksWithDistance(t *testing.T) {
	cam := viewer.NewCamera(viewer.Perspective, nil)
	view, proj := cam.Matrices()
	nearSize := New().CalculateScreenSize(view, proj, 800, 600)

	cam.Dolly(5)
	view, proj = cam.Matrices()
	farSize := New().CalculateScreenSize(view, proj, 800, 600)

	assert.Less(t, farSize, nearSize)
}

func TestHandles(t *testing.T) {
	g := New(WithSize(3))
	g.SetAxisLocked(2, true)

	handles := g.Handles()
	require.Len(t, handles, 2)
	assert.Equal(t, geometry.NewVector3(3, 0, 0), handles[0].End)
	assert.Equal(t, geometry.NewVector3(0, 3, 0), handles[1].End)
	assert.Empty(t, g.Rings(16))

	g.SetOperation(Rotate)
	assert.Empty(t, g.Handles())
	assert.Len(t, g.Rings(16), 2)

	g.SetMode(ModeBox)
	assert.Len(t, g.Handles(), 12)

	g.SetMode(ModeNone)
	assert.Empty(t, g.Handles())
}
