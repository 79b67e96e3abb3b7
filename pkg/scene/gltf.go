package scene

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/qmuntal/gltf"
)

// LoadGLTF reads a .gltf or .glb file and flattens every triangle primitive
// of the default scene into world space
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf: %w", err)
	}
	mesh, err := meshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

func meshFromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")

	for _, nodeIdx := range rootNodes(doc) {
		if err := addNode(doc, nodeIdx, mgl64.Ident4(), mesh, 0); err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

// rootNodes returns the nodes of the default scene, or every parentless
// node when the document defines no scene
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			sceneIdx = int(*doc.Scene)
		}
		roots := make([]int, 0, len(doc.Scenes[sceneIdx].Nodes))
		for _, n := range doc.Scenes[sceneIdx].Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[int(c)] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// maxNodeDepth guards against cyclic node graphs in malformed files
const maxNodeDepth = 64

func addNode(doc *gltf.Document, nodeIdx int, parent mgl64.Mat4, mesh *Mesh, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	node := doc.Nodes[nodeIdx]
	world := parent.Mul4(localTransform(node))

	if node.Mesh != nil {
		meshIdx := int(*node.Mesh)
		if meshIdx >= len(doc.Meshes) {
			return fmt.Errorf("mesh index %d out of range", meshIdx)
		}
		if err := addPrimitives(doc, doc.Meshes[meshIdx], world, mesh); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := addNode(doc, int(child), world, mesh, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localTransform(node *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(node.Matrix)
	if m != (mgl64.Mat4{}) && m != mgl64.Ident4() {
		return m
	}

	local := mgl64.Translate3D(node.Translation[0], node.Translation[1], node.Translation[2])
	if r := node.Rotation; r != [4]float64{} {
		q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
		local = local.Mul4(q.Normalize().Mat4())
	}
	if s := node.Scale; s != [3]float64{} {
		local = local.Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	}
	return local
}

func addPrimitives(doc *gltf.Document, m *gltf.Mesh, world mgl64.Mat4, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, int(posIdx))
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		for i := range positions {
			positions[i] = geometry.FromVec3(mgl64.TransformCoordinate(positions[i].Vec3(), world))
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, int(*prim.Indices))
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				return fmt.Errorf("index out of range in triangle %d", i/3)
			}
			tri := geometry.NewTriangle(geometry.Vector3{}, positions[a], positions[b], positions[c])
			tri.Normal = tri.CalculateNormal()
			mesh.AddTriangle(tri)
		}
	}
	return nil
}

// accessorBytes returns the raw buffer slice of an accessor together with its element stride
func accessorBytes(doc *gltf.Document, accessorIdx int, elementSize int) ([]byte, int, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[int(*accessor.BufferView)]
	buffer := doc.Buffers[int(view.Buffer)]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elementSize
	}
	start := int(view.ByteOffset) + int(accessor.ByteOffset)
	count := int(accessor.Count)
	if count > 0 && start+(count-1)*stride+elementSize > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor %d exceeds buffer", accessorIdx)
	}
	return buffer.Data[start:], stride, count, nil
}

func readPositions(doc *gltf.Document, accessorIdx int) ([]geometry.Vector3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, count, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}

	result := make([]geometry.Vector3, count)
	for i := range result {
		b := data[i*stride:]
		result[i] = geometry.NewVector3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
		)
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, count, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}
