package loader

import (
	"errors"

	"GopherPick/internal/logger"
	"GopherPick/internal/scene"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Noise parameters for LoadTerrain
const (
	terrainAlpha   = 2.0
	terrainBeta    = 2.0
	terrainOctaves = 3
	// Sample the noise at this many grid cells per unit so neighbouring
	// vertices don't land on integer lattice points, where Perlin noise is 0.
	terrainFrequency = 0.1
)

// LoadPlane builds a flat grid of gridSize x gridSize vertices on the XZ
// plane, starting at the origin.
func LoadPlane(gridSize int, gridSpacing float32) (*scene.Mesh, error) {
	return buildGrid(gridSize, gridSpacing, func(x, z int) float32 { return 0 })
}

// LoadTerrain builds a grid like LoadPlane with heights taken from 2D Perlin
// noise scaled by amplitude. The same seed always produces the same terrain.
func LoadTerrain(gridSize int, gridSpacing, amplitude float32, seed int64) (*scene.Mesh, error) {
	noise := perlin.NewPerlin(terrainAlpha, terrainBeta, terrainOctaves, seed)
	mesh, err := buildGrid(gridSize, gridSpacing, func(x, z int) float32 {
		return amplitude * float32(noise.Noise2D(float64(x)*terrainFrequency, float64(z)*terrainFrequency))
	})
	if err != nil {
		return nil, err
	}

	mesh.Name = "terrain"
	logger.Log.Info("Terrain created",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("amplitude", amplitude),
		zap.Int64("seed", seed))
	return mesh, nil
}

func buildGrid(gridSize int, gridSpacing float32, height func(x, z int) float32) (*scene.Mesh, error) {
	if gridSize < 2 {
		return nil, errors.New("gridSize must be at least 2")
	}

	vertices := make([]mgl32.Vec3, 0, gridSize*gridSize)
	indices := make([]int32, 0, (gridSize-1)*(gridSize-1)*6)

	for x := 0; x < gridSize; x++ {
		for z := 0; z < gridSize; z++ {
			vertices = append(vertices, mgl32.Vec3{
				float32(x) * gridSpacing,
				height(x, z),
				float32(z) * gridSpacing,
			})
		}
	}

	// Two triangles per cell
	for x := 0; x < gridSize-1; x++ {
		for z := 0; z < gridSize-1; z++ {
			topLeft := int32(x*gridSize + z)
			topRight := topLeft + 1
			bottomLeft := int32((x+1)*gridSize + z)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, bottomRight, topLeft, bottomRight, topRight)
		}
	}

	mesh := scene.NewMesh(vertices, indices)
	mesh.Name = "plane"
	return mesh, nil
}
