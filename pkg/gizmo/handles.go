package gizmo

import "github.com/philipparndt/quadview/pkg/geometry"

// Segment is a straight piece of gizmo geometry in world space
type Segment struct {
	Axis  int
	Start geometry.Vector3
	End   geometry.Vector3
}

// Handles returns the line geometry to draw for the current mode.
// Handle mode yields one arm per unlocked axis, Box mode the twelve edges of
// a cube around the position, None nothing. Rotation rings come from Rings.
func (g *Gizmo) Handles() []Segment {
	switch g.state.Mode {
	case ModeHandle:
		if g.state.Operation == Rotate {
			return nil
		}
		segments := make([]Segment, 0, 3)
		for i := 0; i < 3; i++ {
			if g.state.AxisLocked[i] {
				continue
			}
			segments = append(segments, Segment{
				Axis:  i,
				Start: g.state.Position,
				End:   g.state.Position.Add(g.Axis(i).Mul(g.state.Size)),
			})
		}
		return segments
	case ModeBox:
		return g.boxEdges()
	}
	return nil
}

// Rings returns sampled rotation rings keyed by axis, empty unless the
// gizmo is in Handle mode with the Rotate operation
func (g *Gizmo) Rings(samples int) map[int][]geometry.Vector3 {
	rings := make(map[int][]geometry.Vector3)
	if g.state.Mode != ModeHandle || g.state.Operation != Rotate {
		return rings
	}
	for i := 0; i < 3; i++ {
		if g.state.AxisLocked[i] {
			continue
		}
		rings[i] = geometry.NewCircle(g.state.Position, g.Axis(i), g.state.Size).Points(samples)
	}
	return rings
}

func (g *Gizmo) boxEdges() []Segment {
	h := g.state.Size * 0.5
	x, y, z := g.Axis(0).Mul(h), g.Axis(1).Mul(h), g.Axis(2).Mul(h)
	c := g.state.Position

	var corners [8]geometry.Vector3
	for i := range corners {
		p := c
		p = p.Add(x.Mul(sign(i & 1)))
		p = p.Add(y.Mul(sign(i & 2)))
		p = p.Add(z.Mul(sign(i & 4)))
		corners[i] = p
	}

	segments := make([]Segment, 0, 12)
	for i := range corners {
		for bit := 0; bit < 3; bit++ {
			j := i | 1<<bit
			if j != i {
				segments = append(segments, Segment{Axis: bit, Start: corners[i], End: corners[j]})
			}
		}
	}
	return segments
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}
