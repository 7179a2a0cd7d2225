package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PlaneEpsilon is the smallest |direction·normal| still treated as non-parallel
	PlaneEpsilon = 0.000001
	// TriangleEpsilon guards the Möller-Trumbore determinant and the minimum hit distance
	TriangleEpsilon = 0.0000001
)

// All intersection routines return (intersected, distance along the ray, intersection point).
// When intersected is false the other two values are zero and carry no meaning.

// RayIntersectPlane tests if a ray hits a plane in front of its origin.
// The plane normal must be unit length.
func RayIntersectPlane(ray Ray, plane Plane) (bool, float32, mgl32.Vec3) {
	denominator := ray.Direction.Dot(plane.Normal)
	if mgl32.Abs(denominator) <= PlaneEpsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to the plane
	}

	t := plane.Point.Sub(ray.Origin).Dot(plane.Normal) / denominator
	if t <= 0 {
		return false, 0, mgl32.Vec3{} // Plane is behind the origin
	}

	return true, t, ray.At(t)
}

// RayIntersectSphere tests if a ray intersects a sphere using the geometric solution.
// The ray direction must be unit length.
//
// If the origin is inside the sphere the forward exit point is returned,
// never a point behind the origin.
func RayIntersectSphere(ray Ray, sphere Sphere) (bool, float32, mgl32.Vec3) {
	if ray.Direction.LenSqr() == 0 {
		return false, 0, mgl32.Vec3{} // A ray without direction hits nothing
	}

	l := sphere.Center.Sub(ray.Origin)
	tca := l.Dot(ray.Direction)
	radiusSquared := sphere.Radius * sphere.Radius

	// Squared distance between the center and the closest point on the ray line
	d2 := l.Dot(l) - tca*tca
	if d2 > radiusSquared {
		return false, 0, mgl32.Vec3{}
	}

	thc := float32(math.Sqrt(float64(radiusSquared - d2)))
	t0 := tca - thc
	t1 := tca + thc

	if t0 < 0 && t1 < 0 {
		// Both intersections are behind the ray origin
		return false, 0, mgl32.Vec3{}
	}

	t := t0
	if t0 < 0 {
		t = t1
	}

	return true, t, ray.At(t)
}

// RayIntersectBox tests if a ray intersects an axis-aligned box (slab method).
//
// Hits are forward-only: a box entirely behind the origin is a miss, and an
// origin inside the box yields the exit point.
func RayIntersectBox(ray Ray, box Box) (bool, float32, mgl32.Vec3) {
	if ray.Direction.LenSqr() == 0 {
		return false, 0, mgl32.Vec3{} // A ray without direction hits nothing
	}

	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		direction := ray.Direction[axis]

		if direction == 0 {
			// Parallel to this slab: no bound if inside it, miss otherwise
			if origin < box.Min[axis] || origin > box.Max[axis] {
				return false, 0, mgl32.Vec3{}
			}
			continue
		}

		near := (box.Min[axis] - origin) / direction
		far := (box.Max[axis] - origin) / direction
		if near > far {
			near, far = far, near
		}

		if near > tmin {
			tmin = near
		}
		if far < tmax {
			tmax = far
		}
		if tmin > tmax {
			return false, 0, mgl32.Vec3{}
		}
	}

	if tmax < 0 {
		return false, 0, mgl32.Vec3{} // Box is behind the origin
	}

	t := tmin
	if t < 0 {
		// Started inside
		t = tmax
	}

	return true, t, ray.At(t)
}

// RayIntersectTriangle tests if a ray intersects a triangle
// Uses Möller-Trumbore algorithm
func RayIntersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -TriangleEpsilon && a < TriangleEpsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to triangle, or the triangle has no area
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	t := f * edge2.Dot(q)

	if t > TriangleEpsilon {
		return true, t, ray.At(t)
	}

	return false, 0, mgl32.Vec3{} // Line intersection but not ray intersection
}
