package scene

import (
	"math"

	"GopherPick/internal/raycast"

	"github.com/go-gl/mathgl/mgl32"
)

type Mesh struct {
	// HOT DATA - Read on every pick
	ModelMatrix mgl32.Mat4 // Local to world transform (TRS)
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	BoundingBox raycast.Box
	// Bounding sphere in local space
	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32

	// COLD DATA - Geometry and identification
	Id         int       // Mesh identifier
	Name       string    // Mesh name
	SourcePath string    // Original file path
	Vertices   []float32 // Vertex positions, 3 floats per vertex
	Faces      []int32   // Index triples, 3 per triangle
}

// NewMesh builds a mesh at the origin with identity rotation and unit scale.
func NewMesh(vertices []mgl32.Vec3, faces []int32) *Mesh {
	return NewMeshFromBuffers(flattenVertices(vertices), faces)
}

// NewMeshFromBuffers is NewMesh for an already flattened vertex buffer
func NewMeshFromBuffers(vertices []float32, faces []int32) *Mesh {
	m := &Mesh{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Vertices: vertices,
		Faces:    faces,
	}
	m.updateModelMatrix()
	m.CalculateBounds()
	return m
}

func (m *Mesh) X() float32 {
	return m.Position[0]
}

func (m *Mesh) Y() float32 {
	return m.Position[1]
}

func (m *Mesh) Z() float32 {
	return m.Position[2]
}

// SetPosition sets the position of the mesh
func (m *Mesh) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Mesh) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

// Rotate applies rotations in degrees around X, then Y, then Z
func (m *Mesh) Rotate(angleX, angleY, angleZ float32) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.updateModelMatrix()
}

func (m *Mesh) updateModelMatrix() {
	// ModelMatrix = translation * rotation * scale, so vertices are scaled first, then rotated, then translated
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// CalculateBounds computes the local bounding box and bounding sphere from the
// vertex buffer. Call it again after editing Vertices.
func (m *Mesh) CalculateBounds() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		m.BoundingBox = raycast.Box{}
		m.BoundingSphereCenter = mgl32.Vec3{}
		m.BoundingSphereRadius = 0
		return
	}

	box := raycast.Box{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < numVertices; i++ {
		box = box.ExpandByPoint(m.Vertex(i))
	}

	center := box.Center()
	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		distanceSq := m.Vertex(i).Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingBox = box
	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

// Vertex returns vertex i in local space
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) GetBoundingBox() raycast.Box {
	return m.BoundingBox
}

func (m *Mesh) GetBoundingSphere() raycast.Sphere {
	return raycast.Sphere{Center: m.BoundingSphereCenter, Radius: m.BoundingSphereRadius}
}

func (m *Mesh) GetWorldMatrix() mgl32.Mat4 {
	return m.ModelMatrix
}

func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// Triangle returns the local vertices of triangle i. An index outside the
// vertex buffer yields a zero-area triangle, which never intersects.
func (m *Mesh) Triangle(i int) (v0, v1, v2 mgl32.Vec3) {
	vertexCount := int32(m.VertexCount())
	i0, i1, i2 := m.Faces[i*3], m.Faces[i*3+1], m.Faces[i*3+2]
	if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= vertexCount || i1 >= vertexCount || i2 >= vertexCount {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	return m.Vertex(int(i0)), m.Vertex(int(i1)), m.Vertex(int(i2))
}

// ApplyModelTransformation moves a local point into world space
func (m *Mesh) ApplyModelTransformation(vertex mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(vertex, m.ModelMatrix)
}

// Helper to flatten Vec3 array
func flattenVertices(vertices []mgl32.Vec3) []float32 {
	flat := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		flat = append(flat, v.X(), v.Y(), v.Z())
	}
	return flat
}
