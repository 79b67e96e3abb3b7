package scene

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/quadview/pkg/geometry"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// LoadSTL reads an ASCII or binary STL file
func LoadSTL(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	mesh, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if mesh.Name == "" {
		mesh.Name = filepath.Base(path)
	}
	return mesh, nil
}

// ParseSTL parses STL data. Binary files are recognized by their exact
// size; some exporters write binary headers starting with "solid".
func ParseSTL(data []byte) (*Mesh, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return nil, fmt.Errorf("not an STL file")
}

func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return len(data) == stlHeaderSize+4+int(count)*stlTriangleSize
}

func parseBinarySTL(data []byte) (*Mesh, error) {
	name := strings.TrimSpace(string(bytes.TrimRight(data[:stlHeaderSize], "\x00")))
	mesh := NewMesh(name)

	count := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	mesh.Triangles = make([]geometry.Triangle, 0, count)

	offset := stlHeaderSize + 4
	for i := 0; i < count; i++ {
		rec := data[offset : offset+stlTriangleSize]
		mesh.AddTriangle(geometry.NewTriangle(
			readVec(rec[0:]),
			readVec(rec[12:]),
			readVec(rec[24:]),
			readVec(rec[36:]),
		))
		offset += stlTriangleSize
	}
	return mesh, nil
}

func readVec(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	)
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	mesh := NewMesh("")

	var normal geometry.Vector3
	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			mesh.Name = strings.Join(fields[1:], " ")
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseFloats(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				normal = v
			}
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", line)
			}
			v, err := parseFloats(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)
		case "endfacet":
			if len(vertices) == 3 {
				mesh.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
			normal = geometry.Vector3{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return mesh, nil
}

func parseFloats(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid number %q: %w", f, err)
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}
