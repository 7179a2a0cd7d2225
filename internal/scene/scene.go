package scene

import (
	"context"
	"math"
	"runtime"
	"sync"

	"GopherPick/internal/logger"
	"GopherPick/internal/raycast"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// PickResult describes the nearest thing a ray hit. Mesh is nil when the
// ground plane was hit or when nothing was hit.
type PickResult struct {
	Hit      bool
	Distance float32
	Point    mgl32.Vec3
	Mesh     *Mesh
}

// Scene is the set of pickable meshes plus an optional ground plane that
// catches rays missing every mesh.
type Scene struct {
	mu     sync.RWMutex
	meshes []*Mesh
	ground *raycast.Plane
	nextId int

	// Workers bounds the concurrency of PickBatch. Zero means GOMAXPROCS.
	Workers int
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddMesh(mesh *Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	mesh.Id = s.nextId
	s.meshes = append(s.meshes, mesh)
	logger.Log.Info("Mesh added to scene",
		zap.String("name", mesh.Name),
		zap.Int("id", mesh.Id),
		zap.Int("triangles", mesh.TriangleCount()))
}

// RemoveMesh removes mesh and reports whether it was part of the scene.
func (s *Scene) RemoveMesh(mesh *Mesh) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.meshes {
		if m == mesh {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			logger.Log.Info("Mesh removed from scene", zap.String("name", mesh.Name), zap.Int("id", mesh.Id))
			return true
		}
	}
	logger.Log.Warn("Attempted to remove unknown mesh", zap.String("name", mesh.Name))
	return false
}

func (s *Scene) Meshes() []*Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meshes := make([]*Mesh, len(s.meshes))
	copy(meshes, s.meshes)
	return meshes
}

// SetGround sets the fallback plane. Pass nil to remove it.
func (s *Scene) SetGround(ground *raycast.Plane) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ground = ground
}

// Pick returns the nearest mesh hit along ray. When no mesh is hit the ground
// plane is tried.
func (s *Scene) Pick(ray raycast.Ray) PickResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := PickResult{Distance: float32(math.MaxFloat32)}
	for _, mesh := range s.meshes {
		hit, distance, point := raycast.IntersectMesh(ray, mesh)
		if hit && distance < result.Distance {
			result = PickResult{Hit: true, Distance: distance, Point: point, Mesh: mesh}
		}
	}
	if result.Hit {
		return result
	}

	if s.ground != nil {
		if hit, distance, point := raycast.RayIntersectPlane(ray, *s.ground); hit {
			return PickResult{Hit: true, Distance: distance, Point: point}
		}
	}
	return PickResult{}
}

// PickBatch picks every ray concurrently and returns results in input order.
// Cancelling ctx stops rays that have not started yet and returns ctx's error.
func (s *Scene) PickBatch(ctx context.Context, rays []raycast.Ray) ([]PickResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]PickResult, len(rays))
	if len(rays) == 0 {
		return results, nil
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	// Rays not started when ctx is done are skipped and Wait returns ctx's error
	group := pool.NewGroupContext(ctx)
	for i := range rays {
		group.Submit(func() {
			results[i] = s.Pick(rays[i])
		})
	}

	if err := group.Wait(); err != nil {
		logger.Log.Warn("Batch pick interrupted", zap.Int("rays", len(rays)), zap.Error(err))
		return nil, err
	}

	logger.Log.Debug("Batch pick finished", zap.Int("rays", len(rays)), zap.Int("workers", workers))
	return results, nil
}
