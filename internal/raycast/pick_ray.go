package raycast

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the pick-ray builder needs from a camera.
type Camera interface {
	// GetPosition returns the camera position in world space
	GetPosition() mgl32.Vec3
	// GetWorldMatrix returns the camera-to-world transform (the inverse view matrix)
	GetWorldMatrix() mgl32.Mat4
	// GetProjectionMatrix returns the projection, which must be invertible
	GetProjectionMatrix() mgl32.Mat4
}

// BuildPickRay converts normalized device coordinates in [-1,1]x[-1,1] into a
// world space ray leaving the camera. The direction is unit length.
func BuildPickRay(deviceCoords mgl32.Vec2, camera Camera) Ray {
	var ray Ray
	SetPickRay(&ray, deviceCoords, camera)
	return ray
}

// SetPickRay overwrites ray with the pick ray for deviceCoords. It panics if
// the camera projection cannot be inverted.
func SetPickRay(ray *Ray, deviceCoords mgl32.Vec2, camera Camera) {
	projection := camera.GetProjectionMatrix()
	if projection.Det() == 0 {
		panic("raycast: camera projection matrix is not invertible")
	}

	ray.Origin = camera.GetPosition()

	// Point on the near plane in clip space, back to eye space, then to world space
	nearPoint := mgl32.Vec3{deviceCoords.X(), deviceCoords.Y(), -1}
	eyePoint := mgl32.TransformCoordinate(nearPoint, projection.Inv())
	worldPoint := mgl32.TransformCoordinate(eyePoint, camera.GetWorldMatrix())

	ray.Direction = worldPoint.Sub(ray.Origin).Normalize()
}

// ScreenToDeviceCoords maps a window position in pixels (origin top-left, y down)
// to normalized device coordinates (origin center, y up).
func ScreenToDeviceCoords(screenX, screenY float32, windowWidth, windowHeight int) mgl32.Vec2 {
	return mgl32.Vec2{
		2.0*screenX/float32(windowWidth) - 1.0,
		1.0 - 2.0*screenY/float32(windowHeight),
	}
}
