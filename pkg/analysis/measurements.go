package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/scene"
)

// EdgeInfo contains information about a unique edge in the mesh
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Measurement is the distance between two selected points
type Measurement struct {
	From     geometry.Vector3
	To       geometry.Vector3
	Delta    geometry.Vector3 // absolute per-axis distance
	Distance float64
}

// AnalyzeModel measures a mesh. Edges shared by neighbouring triangles are counted once.
func AnalyzeModel(mesh *scene.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		TriangleCount: len(mesh.Triangles),
		AllEdges:      make([]EdgeInfo, 0),
	}
	if box, ok := mesh.Bounds(); ok {
		result.BoundingBox = box
		result.Dimensions = box.Size()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	seen := make(map[[2]geometry.Vector3]bool)

	for i, triangle := range mesh.Triangles {
		result.SurfaceArea += triangle.Area()

		for _, edge := range triangle.Edges() {
			key := edge
			if less(key[1], key[0]) {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] || edge[0] == edge[1] {
				continue
			}
			seen[key] = true

			length := edge[0].Distance(edge[1])
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:      edge[0],
				End:        edge[1],
				Length:     length,
				TriangleID: i,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, before func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return before(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// Measure returns the distance between two points along each axis and in total
func Measure(from, to geometry.Vector3) Measurement {
	d := to.Sub(from)
	return Measurement{
		From:     from,
		To:       to,
		Delta:    geometry.NewVector3(math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)),
		Distance: from.Distance(to),
	}
}

// FindNearestVertex finds the vertex in the mesh nearest to a given point
func FindNearestVertex(mesh *scene.Mesh, point geometry.Vector3) (geometry.Vector3, float64, bool) {
	var nearestVertex geometry.Vector3
	minDistance := math.MaxFloat64
	found := false

	for _, triangle := range mesh.Triangles {
		for _, vertex := range triangle.Vertices() {
			distance := point.Distance(vertex)
			if distance < minDistance {
				minDistance = distance
				nearestVertex = vertex
				found = true
			}
		}
	}

	return nearestVertex, minDistance, found
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
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
