package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay returns a ray. The direction is stored as given, it is not normalized.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point Origin + Direction*t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is an infinite plane through Point. Normal must be unit length.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// NewPlane builds a plane and normalizes the normal.
func NewPlane(point, normal mgl32.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// Sphere is a ball around Center. Radius must not be negative.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Box is an axis-aligned box. Min must be componentwise <= Max.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxFromPoints returns the smallest box enclosing all points.
// With no points it returns the zero box.
func BoxFromPoints(points ...mgl32.Vec3) Box {
	if len(points) == 0 {
		return Box{}
	}
	box := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.ExpandByPoint(p)
	}
	return box
}

// ExpandByPoint returns a copy of the box grown to contain p.
func (b Box) ExpandByPoint(p mgl32.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = float32(math.Min(float64(b.Min[i]), float64(p[i])))
		b.Max[i] = float32(math.Max(float64(b.Max[i]), float64(p[i])))
	}
	return b
}

// Center returns the midpoint of the box
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of the box
func (b Box) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Transform returns the axis-aligned box enclosing the eight corners of b
// after transforming them by m. Under rotation the result is larger than the
// rotated box, which keeps it a conservative bound.
func (b Box) Transform(m mgl32.Mat4) Box {
	corners := b.Corners()
	for i := range corners {
		corners[i] = mgl32.TransformCoordinate(corners[i], m)
	}
	return BoxFromPoints(corners[:]...)
}
