package gizmo

import (
	"math"

	"github.com/philipparndt/quadview/pkg/geometry"
)

// HitThreshold is the accepted distance from a handle, as a fraction of the handle size
const HitThreshold = 0.1

// Hit is the result of a successful hit test
type Hit struct {
	Axis int     // 0=X, 1=Y, 2=Z
	T    float64 // ray parameter of the hit
}

// HitTest intersects a pick ray with the handle arms (Translate, Scale) or
// rotation rings (Rotate). Among all accepted axes the one closest along the
// ray wins. It only reports hits in Handle mode.
func (g *Gizmo) HitTest(origin, dir geometry.Vector3) (Hit, bool) {
	if g.state.Mode != ModeHandle || g.state.Size <= 0 || dir.Length() <= geometry.Epsilon {
		return Hit{Axis: NoAxis}, false
	}
	ray := geometry.NewRay(origin, dir)

	if g.state.Operation == Rotate {
		return g.hitRings(ray)
	}
	return g.hitArms(ray)
}

func (g *Gizmo) hitArms(ray geometry.Ray) (Hit, bool) {
	size := g.state.Size
	threshold := size * HitThreshold
	best := Hit{Axis: NoAxis, T: math.Inf(1)}

	for i := 0; i < 3; i++ {
		if g.state.AxisLocked[i] {
			continue
		}
		distance, t, s, ok := ray.ClosestApproach(g.state.Position, g.Axis(i))
		if !ok {
			continue
		}
		if distance >= threshold || t <= 0 || s < 0 || s > size {
			continue
		}
		if t < best.T {
			best = Hit{Axis: i, T: t}
		}
	}
	return best, best.Axis != NoAxis
}

func (g *Gizmo) hitRings(ray geometry.Ray) (Hit, bool) {
	size := g.state.Size
	threshold := size * HitThreshold
	best := Hit{Axis: NoAxis, T: math.Inf(1)}

	for i := 0; i < 3; i++ {
		if g.state.AxisLocked[i] {
			continue
		}
		normal := g.Axis(i)
		t, ok := ray.IntersectPlane(g.state.Position, normal)
		if !ok {
			continue
		}
		ring := geometry.NewCircle(g.state.Position, normal, size)
		if ring.RimDistance(ray.PointAt(t)) >= threshold {
			continue
		}
		if t < best.T {
			best = Hit{Axis: i, T: t}
		}
	}
	return best, best.Axis != NoAxis
}

// ProjectToAxis constrains p onto the line through the gizmo along axis.
// In global space this resets the two other coordinates to the gizmo position.
func (g *Gizmo) ProjectToAxis(p geometry.Vector3, axis int) geometry.Vector3 {
	if axis < 0 || axis > 2 {
		return p
	}
	if g.state.Space == Global {
		return g.state.Position.WithComponent(axis, p.Component(axis))
	}
	dir := g.Axis(axis)
	return g.state.Position.Add(dir.Mul(p.Sub(g.state.Position).Dot(dir)))
}
