package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"GopherPick/internal/logger"
	"GopherPick/internal/scene"

	"go.uber.org/zap"
)

// LoadModel reads the vertex positions and faces of a Wavefront OBJ file.
// Texture coordinates, normals and materials are ignored.
func LoadModel(filename string) (*scene.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	mesh.SourcePath = filename
	return mesh, nil
}

// ParseOBJ builds a mesh from OBJ text. Faces with more than three corners
// are triangulated as a fan around their first corner.
func ParseOBJ(r io.Reader) (*scene.Mesh, error) {
	var vertices []float32
	var faces []int32

	lineNumber := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			vertices = append(vertices, vertex[0], vertex[1], vertex[2])
		case "f":
			face, err := parseFace(parts[1:], int32(len(vertices)/3))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			faces = append(faces, face...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return scene.NewMeshFromBuffers(vertices, faces), nil
}

// parseVertex reads x, y and z. An optional w component is dropped.
func parseVertex(parts []string) ([]float32, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("vertex needs 3 components, got %d", len(parts))
	}
	vertex := make([]float32, 0, 3)
	for _, part := range parts[:3] {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex value %v: %w", part, err)
		}
		vertex = append(vertex, float32(val))
	}
	return vertex, nil
}

// parseFace returns zero-based vertex indices in triangle order. Negative OBJ
// indices count back from the last vertex read so far.
func parseFace(parts []string, vertexCount int32) ([]int32, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}

	face := make([]int32, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		index, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %v: %w", vals[0], err)
		}

		switch {
		case index > 0:
			index-- // .obj indices start at 1, not 0
		case index < 0:
			index += int64(vertexCount)
		default:
			return nil, errors.New("invalid vertex index 0")
		}
		if index < 0 || index >= int64(vertexCount) {
			return nil, fmt.Errorf("vertex index %v out of range (%d vertices)", vals[0], vertexCount)
		}
		face = append(face, int32(index))
	}

	if len(face) == 3 {
		return face, nil
	}
	if len(face) > 4 {
		logger.Log.Debug("Face with more than 4 vertices detected, using fan triangulation", zap.Int("vertexCount", len(face)))
	}
	triangulated := make([]int32, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}
