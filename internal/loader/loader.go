package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"GopherPick/internal/logger"
	"GopherPick/internal/scene"

	"go.uber.org/zap"
)

const (
	ObjExtension  = ".obj"
	MeshExtension = ".gmesh"
)

// LoadMesh picks a loader from the file extension: Wavefront OBJ or the
// binary mesh cache.
func LoadMesh(path string) (*scene.Mesh, error) {
	var (
		mesh *scene.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ObjExtension:
		mesh, err = LoadModel(path)
	case MeshExtension:
		mesh, err = LoadMeshFile(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: %s", ext, path)
	}
	if err != nil {
		logger.Log.Error("Could not load mesh", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
	return mesh, nil
}
