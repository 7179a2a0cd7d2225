package raycast

import "github.com/go-gl/mathgl/mgl32"

// Raycaster owns a scratch ray that is rebuilt for every pick, so a frame
// loop can pick without allocating. A Raycaster must not be shared between
// goroutines; give each one its own.
type Raycaster struct {
	Ray    Ray
	Picker Picker
}

// NewRaycaster returns a raycaster whose ray points down -Z from the origin.
func NewRaycaster() *Raycaster {
	return &Raycaster{Ray: NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})}
}

// SetPickRay aims the scratch ray through deviceCoords from camera.
func (rc *Raycaster) SetPickRay(deviceCoords mgl32.Vec2, camera Camera) {
	SetPickRay(&rc.Ray, deviceCoords, camera)
}

// IntersectsPlane tests the scratch ray against plane
func (rc *Raycaster) IntersectsPlane(plane Plane) (bool, float32, mgl32.Vec3) {
	return RayIntersectPlane(rc.Ray, plane)
}

// IntersectsSphere tests the scratch ray against sphere
func (rc *Raycaster) IntersectsSphere(sphere Sphere) (bool, float32, mgl32.Vec3) {
	return RayIntersectSphere(rc.Ray, sphere)
}

// IntersectsBox tests the scratch ray against box
func (rc *Raycaster) IntersectsBox(box Box) (bool, float32, mgl32.Vec3) {
	return RayIntersectBox(rc.Ray, box)
}

// IntersectsTriangle tests the scratch ray against the triangle v0 v1 v2
func (rc *Raycaster) IntersectsTriangle(v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	return RayIntersectTriangle(rc.Ray, v0, v1, v2)
}

// IntersectsMesh picks mesh with the raycaster's Picker
func (rc *Raycaster) IntersectsMesh(mesh Mesh) (bool, float32, mgl32.Vec3) {
	return rc.Picker.IntersectMesh(rc.Ray, mesh)
}

// IntersectsMeshBoundingBox tests the scratch ray against the world bounding box of mesh
func (rc *Raycaster) IntersectsMeshBoundingBox(mesh Mesh) (bool, float32, mgl32.Vec3) {
	return IntersectMeshBoundingBox(rc.Ray, mesh)
}

// IntersectsMeshBoundingSphere tests the scratch ray against the world bounding sphere of mesh
func (rc *Raycaster) IntersectsMeshBoundingSphere(mesh Mesh) (bool, float32, mgl32.Vec3) {
	return IntersectMeshBoundingSphere(rc.Ray, mesh)
}
