// Package scene loads meshes from disk and turns them into snap primitives.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/snapping"
)

// ErrUnsupportedFormat is returned for files that are neither STL nor glTF
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Mesh is a triangle soup loaded from a file
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewMesh creates an empty mesh
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddTriangle appends a triangle
func (m *Mesh) AddTriangle(t geometry.Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// Bounds returns the bounding box of all vertices
func (m *Mesh) Bounds() (geometry.BoundingBox, bool) {
	box := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		box.Extend(t.V1)
		box.Extend(t.V2)
		box.Extend(t.V3)
	}
	return box, !box.IsEmpty()
}

// Summary describes the snap primitives a mesh contributes
type Summary struct {
	Name      string
	Triangles int
	Points    int
	Edges     int
	Faces     int
	Bounds    geometry.BoundingBox
}

// Register feeds the mesh's unique vertices, edges and non-degenerate faces
// into r. Shared edges are registered once, in the orientation first seen.
func (m *Mesh) Register(r snapping.Registrar) Summary {
	summary := Summary{Name: m.Name, Triangles: len(m.Triangles)}
	summary.Bounds, _ = m.Bounds()

	points := make(map[geometry.Vector3]struct{})
	edges := make(map[[2]geometry.Vector3]struct{})

	for _, t := range m.Triangles {
		for _, v := range t.Vertices() {
			if _, seen := points[v]; !seen {
				points[v] = struct{}{}
				r.RegisterPoint(v)
			}
		}
		for _, e := range t.Edges() {
			key := edgeKey(e[0], e[1])
			if _, seen := edges[key]; !seen {
				edges[key] = struct{}{}
				r.RegisterEdge(e[0], e[1])
			}
		}
		if !t.IsDegenerate() {
			r.RegisterFace(t.Vertices())
			summary.Faces++
		}
	}

	summary.Points = len(points)
	summary.Edges = len(edges)
	return summary
}

// edgeKey orders endpoints so both directions of an edge share a key
func edgeKey(a, b geometry.Vector3) [2]geometry.Vector3 {
	if less(b, a) {
		a, b = b, a
	}
	return [2]geometry.Vector3{a, b}
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// Load reads a mesh, choosing the parser by file extension
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return LoadSTL(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
