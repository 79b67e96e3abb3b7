// Package snapping resolves manipulated positions to nearby grid points,
// vertices, edges or faces.
package snapping

import (
	"math"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
)

// Target is the outcome of a snap query
type Target struct {
	Position geometry.Vector3
	Mode     Mode
	Distance float64
	Label    string
	found    bool
}

// OK reports whether a candidate was found within the threshold
func (t Target) OK() bool {
	return t.found
}

// Service holds the snap policy flags and the registered snap geometry
type Service struct {
	enabled   [modeCount]bool
	threshold float64
	gridSize  float64
	reg       registry
}

const modeCount = int(Perpendicular) + 1

// Option configures a Service
type Option func(*Service)

// WithThreshold sets the maximum snap distance
func WithThreshold(threshold float64) Option {
	return func(s *Service) { s.SetThreshold(threshold) }
}

// WithGridSize sets the grid spacing
func WithGridSize(size float64) Option {
	return func(s *Service) { s.SetGridSize(size) }
}

// WithModes enables the given modes in addition to Grid
func WithModes(modes ...Mode) Option {
	return func(s *Service) {
		for _, m := range modes {
			s.SetSnapMode(m, true)
		}
	}
}

// NewService creates a service with only grid snapping enabled
func NewService(opts ...Option) *Service {
	s := &Service{
		threshold: 1.0,
		gridSize:  1.0,
		reg:       newRegistry(),
	}
	s.enabled[Grid] = true
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyConfig copies snap flags, threshold and effective grid size from cfg
func (s *Service) ApplyConfig(cfg *config.Config) {
	s.enabled[Grid] = cfg.Snap.Grid
	s.enabled[Point] = cfg.Snap.Point
	s.enabled[Edge] = cfg.Snap.Edge
	s.enabled[Face] = cfg.Snap.Face
	s.enabled[Perpendicular] = cfg.Snap.Perpendicular
	s.SetThreshold(cfg.SnapThreshold)
	s.SetGridSize(cfg.EffectiveGridSize())
}

// SetSnapMode enables or disables a mode
func (s *Service) SetSnapMode(mode Mode, enabled bool) {
	if mode < 0 || int(mode) >= len(s.enabled) {
		return
	}
	s.enabled[mode] = enabled
}

// IsSnapModeEnabled reports whether a mode is enabled
func (s *Service) IsSnapModeEnabled(mode Mode) bool {
	if mode < 0 || int(mode) >= len(s.enabled) {
		return false
	}
	return s.enabled[mode]
}

// SetThreshold sets the maximum snap distance; negative values become 0
func (s *Service) SetThreshold(threshold float64) {
	s.threshold = math.Max(0, threshold)
}

// Threshold returns the maximum snap distance
func (s *Service) Threshold() float64 {
	return s.threshold
}

// SetGridSize sets the grid spacing used by grid snapping
func (s *Service) SetGridSize(size float64) {
	s.gridSize = size
}

// GridSize returns the grid spacing
func (s *Service) GridSize() float64 {
	return s.gridSize
}

// SnapPosition snaps input. Without a cursor only grid snapping applies;
// with one the best candidate across all enabled modes is used.
func (s *Service) SnapPosition(input geometry.Vector3, cursor *geometry.Vector3) geometry.Vector3 {
	if cursor == nil {
		if s.enabled[Grid] && s.gridSize > 0 {
			return SnapToGrid(input, s.gridSize)
		}
		return input
	}
	return s.FindBestSnapTarget(input, *cursor).Position
}

// FindBestSnapTarget evaluates every enabled mode and returns the nearest
// candidate within the threshold. Registered geometry is measured against the
// cursor, the grid against input. The grid candidate only replaces another
// candidate when strictly closer. Without any candidate input is returned.
func (s *Service) FindBestSnapTarget(input, cursor geometry.Vector3) Target {
	best := Target{Position: input, Mode: Grid, Distance: math.Inf(1), Label: "none"}

	consider := func(c Target, ok bool) {
		if ok && c.Distance <= s.threshold && c.Distance < best.Distance {
			c.found = true
			best = c
		}
	}

	if s.enabled[Point] {
		consider(s.nearestPoint(cursor))
	}
	if s.enabled[Edge] {
		consider(s.nearestEdge(cursor))
	}
	if s.enabled[Face] {
		consider(s.nearestFace(cursor))
	}
	if s.enabled[Perpendicular] {
		consider(s.perpendicular(cursor))
	}
	if s.enabled[Grid] && s.gridSize > 0 {
		snapped := SnapToGrid(input, s.gridSize)
		consider(Target{Position: snapped, Mode: Grid, Distance: snapped.Distance(input), Label: Grid.String()}, true)
	}

	if !best.found {
		best.Distance = 0
	}
	return best
}

func (s *Service) nearestPoint(cursor geometry.Vector3) (Target, bool) {
	best := Target{Distance: math.Inf(1)}
	for _, p := range s.reg.points {
		if d := p.Distance(cursor); d < best.Distance {
			best = Target{Position: p, Mode: Point, Distance: d, Label: Point.String()}
		}
	}
	return best, len(s.reg.points) > 0
}

func (s *Service) nearestEdge(cursor geometry.Vector3) (Target, bool) {
	best := Target{Distance: math.Inf(1)}
	for _, e := range s.reg.edges {
		p := geometry.ClosestPointOnSegment(cursor, e.A, e.B)
		if d := p.Distance(cursor); d < best.Distance {
			best = Target{Position: p, Mode: Edge, Distance: d, Label: Edge.String()}
		}
	}
	return best, len(s.reg.edges) > 0
}

// nearestFace projects onto each face's supporting plane. The projection is
// not clipped to the polygon.
func (s *Service) nearestFace(cursor geometry.Vector3) (Target, bool) {
	best := Target{Distance: math.Inf(1)}
	found := false
	for _, f := range s.reg.faces {
		normal, ok := faceNormal(f.Vertices)
		if !ok {
			continue
		}
		p := geometry.ProjectOntoPlane(cursor, f.Vertices[0], normal)
		if d := p.Distance(cursor); d < best.Distance {
			best = Target{Position: p, Mode: Face, Distance: d, Label: Face.String()}
			found = true
		}
	}
	return best, found
}

// perpendicular snapping needs a reference point from the active tool, which
// the registry does not carry, so it never yields a candidate
func (s *Service) perpendicular(geometry.Vector3) (Target, bool) {
	return Target{}, false
}

// faceNormal computes a polygon normal with Newell's method
func faceNormal(vertices []geometry.Vector3) (geometry.Vector3, bool) {
	var n geometry.Vector3
	for i, cur := range vertices {
		next := vertices[(i+1)%len(vertices)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if n.Length() < geometry.Epsilon {
		return geometry.Vector3{}, false
	}
	return n.Normalize(), true
}

// SnapToGrid rounds each coordinate to the nearest multiple of gridSize,
// halves away from zero. A non-positive grid size returns p unchanged.
func SnapToGrid(p geometry.Vector3, gridSize float64) geometry.Vector3 {
	if gridSize <= 0 {
		return p
	}
	return geometry.Vector3{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
		Z: math.Round(p.Z/gridSize) * gridSize,
	}
}
