package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/scene"
)

// meshToRaylib converts a scene mesh to a raylib mesh with baked lighting
func meshToRaylib(m *scene.Mesh) rl.Mesh {
	triangleCount := len(m.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range m.Triangles {
		normal := triangle.CalculateNormal()

		// 30% ambient floor
		light := math.Max(0.3, -normal.Dot(lightDir))
		r := uint8(200 * light * 0.5)
		g := uint8(200 * light * 0.6)
		b := uint8(200 * light)

		for _, v := range triangle.Vertices() {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

func vec(v geometry.Vector3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
