package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is what the mesh picker needs from a triangle mesh. Bounding volumes and
// triangles are in the mesh's local space; GetWorldMatrix places it in the world.
type Mesh interface {
	GetBoundingBox() Box
	GetBoundingSphere() Sphere
	GetWorldMatrix() mgl32.Mat4
	TriangleCount() int
	Triangle(i int) (v0, v1, v2 mgl32.Vec3)
}

// TriangleFunc is the signature of a ray-triangle test.
type TriangleFunc func(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3)

// Picker runs the mesh picking pipeline. The zero value is ready to use.
type Picker struct {
	// TriangleTest replaces RayIntersectTriangle when set.
	TriangleTest TriangleFunc
}

var defaultPicker Picker

// IntersectMesh returns the nearest world space point where ray hits mesh.
// The returned distance is measured in world space from the ray origin.
func IntersectMesh(ray Ray, mesh Mesh) (bool, float32, mgl32.Vec3) {
	return defaultPicker.IntersectMesh(ray, mesh)
}

// IntersectMeshBoundingBox tests the ray against the mesh bounding box in world space.
func IntersectMeshBoundingBox(ray Ray, mesh Mesh) (bool, float32, mgl32.Vec3) {
	return RayIntersectBox(ray, WorldBoundingBox(mesh))
}

// IntersectMeshBoundingSphere tests the ray against the mesh bounding sphere in world space.
func IntersectMeshBoundingSphere(ray Ray, mesh Mesh) (bool, float32, mgl32.Vec3) {
	return RayIntersectSphere(ray, WorldBoundingSphere(mesh))
}

// WorldBoundingBox returns the axis-aligned world box enclosing the mesh's local box.
func WorldBoundingBox(mesh Mesh) Box {
	return mesh.GetBoundingBox().Transform(mesh.GetWorldMatrix())
}

// WorldBoundingSphere returns the mesh bounding sphere in world space. The
// radius is scaled by the largest axis scale so the sphere stays conservative.
func WorldBoundingSphere(mesh Mesh) Sphere {
	world := mesh.GetWorldMatrix()
	local := mesh.GetBoundingSphere()
	return Sphere{
		Center: mgl32.TransformCoordinate(local.Center, world),
		Radius: local.Radius * mgl32.ExtractMaxScale(world),
	}
}

// IntersectMesh runs the bounding box pre-test, moves the ray into object
// space, tests every triangle there and keeps the hit nearest to the ray origin.
func (p *Picker) IntersectMesh(ray Ray, mesh Mesh) (bool, float32, mgl32.Vec3) {
	if hit, _, _ := IntersectMeshBoundingBox(ray, mesh); !hit {
		return false, 0, mgl32.Vec3{}
	}

	triangleCount := mesh.TriangleCount()
	if triangleCount == 0 {
		return false, 0, mgl32.Vec3{}
	}

	world := mesh.GetWorldMatrix()
	localRay := ToObjectSpace(ray, world)

	test := p.TriangleTest
	if test == nil {
		test = RayIntersectTriangle
	}

	found := false
	nearestDistance := float32(math.MaxFloat32)
	var nearestPoint mgl32.Vec3

	for i := 0; i < triangleCount; i++ {
		v0, v1, v2 := mesh.Triangle(i)
		hit, _, localPoint := test(localRay, v0, v1, v2)
		if !hit {
			continue
		}

		worldPoint := mgl32.TransformCoordinate(localPoint, world)
		distance := worldPoint.Sub(ray.Origin).Len()
		if distance < nearestDistance {
			found = true
			nearestDistance = distance
			nearestPoint = worldPoint
		}
	}

	if !found {
		return false, 0, mgl32.Vec3{}
	}
	return true, nearestDistance, nearestPoint
}

// ToObjectSpace moves a world space ray into the local space of world.
// The direction is transformed as a vector, so translation never touches it.
// A singular world matrix inverts to zero and the local ray degenerates.
func ToObjectSpace(ray Ray, world mgl32.Mat4) Ray {
	inverse := world.Inv()
	return Ray{
		Origin:    mgl32.TransformCoordinate(ray.Origin, inverse),
		Direction: mgl32.TransformNormal(ray.Direction, inverse),
	}
}
