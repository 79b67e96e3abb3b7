package snapping

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/philipparndt/quadview/pkg/geometry"
)

// EdgeSegment is a registered snap edge
type EdgeSegment struct {
	A, B geometry.Vector3
}

// Polygon is a registered snap face as an ordered vertex loop
type Polygon struct {
	Vertices []geometry.Vector3
}

// Registrar accepts snap geometry. Mesh loaders feed it without knowing the service.
type Registrar interface {
	RegisterPoint(p geometry.Vector3)
	RegisterEdge(a, b geometry.Vector3)
	RegisterFace(vertices []geometry.Vector3)
}

// registry holds the candidate geometry. Entries are only appended until
// cleared; the index maps give exact-equality dedupe in constant time.
type registry struct {
	points []geometry.Vector3
	edges  []EdgeSegment
	faces  []Polygon

	pointIndex map[geometry.Vector3]struct{}
	edgeIndex  map[EdgeSegment]struct{}
	faceIndex  map[string]struct{}
}

func newRegistry() registry {
	return registry{
		pointIndex: make(map[geometry.Vector3]struct{}),
		edgeIndex:  make(map[EdgeSegment]struct{}),
		faceIndex:  make(map[string]struct{}),
	}
}

// RegisterPoint adds a snap point unless an identical one exists
func (s *Service) RegisterPoint(p geometry.Vector3) {
	if _, ok := s.reg.pointIndex[p]; ok {
		return
	}
	s.reg.pointIndex[p] = struct{}{}
	s.reg.points = append(s.reg.points, p)
}

// RegisterEdge adds a snap edge unless an identical one exists
func (s *Service) RegisterEdge(a, b geometry.Vector3) {
	edge := EdgeSegment{A: a, B: b}
	if _, ok := s.reg.edgeIndex[edge]; ok {
		return
	}
	s.reg.edgeIndex[edge] = struct{}{}
	s.reg.edges = append(s.reg.edges, edge)
}

// RegisterFace adds a snap face unless an identical one exists.
// Loops with fewer than three vertices are ignored.
func (s *Service) RegisterFace(vertices []geometry.Vector3) {
	if len(vertices) < 3 {
		return
	}
	key := faceKey(vertices)
	if _, ok := s.reg.faceIndex[key]; ok {
		return
	}
	s.reg.faceIndex[key] = struct{}{}
	s.reg.faces = append(s.reg.faces, Polygon{Vertices: slices.Clone(vertices)})
}

// faceKey encodes an ordered vertex loop. Adding zero folds -0 into +0 so
// keys agree with == on the coordinates.
func faceKey(vertices []geometry.Vector3) string {
	buf := make([]byte, 0, len(vertices)*24)
	for _, v := range vertices {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.X+0))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Y+0))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Z+0))
	}
	return string(buf)
}

// ClearSnapTargets empties all registries
func (s *Service) ClearSnapTargets() {
	s.reg = newRegistry()
}

// Counts returns the number of registered points, edges and faces
func (s *Service) Counts() (points, edges, faces int) {
	return len(s.reg.points), len(s.reg.edges), len(s.reg.faces)
}

// Points returns the registered snap points
func (s *Service) Points() []geometry.Vector3 {
	return slices.Clone(s.reg.points)
}

// Edges returns the registered snap edges
func (s *Service) Edges() []EdgeSegment {
	return slices.Clone(s.reg.edges)
}
