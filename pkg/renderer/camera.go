package renderer

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// CameraConfig places a pinhole camera in the scene
type CameraConfig struct {
	Eye  core.Vec3 // camera position
	At   core.Vec3 // point the camera looks at
	Up   core.Vec3 // approximate up direction
	VFov float64   // vertical field of view in degrees
}

// DefaultCameraConfig looks down -Z from the origin with a 45 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:  core.NewVec3(0, 0, 0),
		At:   core.NewVec3(0, 0, -1),
		Up:   core.NewVec3(0, 1, 0),
		VFov: 45,
	}
}

// Camera generates primary rays through the pixels of an image. Pixel (0,0)
// is the top-left corner.
type Camera struct {
	origin        core.Vec3
	u, v, w       core.Vec3 // right, up and backward unit vectors
	width, height int
	halfWidth     float64 // half extent of the image plane at distance 1
	halfHeight    float64
}

// NewCamera creates a camera for an image of the given resolution
func NewCamera(config CameraConfig, width, height int) *Camera {
	w := config.Eye.Subtract(config.At).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(config.VFov * math.Pi / 180 / 2)
	aspect := float64(width) / float64(height)

	return &Camera{
		origin:     config.Eye,
		u:          u,
		v:          v,
		w:          w,
		width:      width,
		height:     height,
		halfWidth:  halfHeight * aspect,
		halfHeight: halfHeight,
	}
}

// GetRay returns the ray through pixel (x, y) offset by jitter ∈ [0,1)²
// inside the pixel
func (c *Camera) GetRay(x, y int, jitter core.Vec2) core.Ray {
	s := (float64(x) + jitter.X) / float64(c.width)
	t := (float64(y) + jitter.Y) / float64(c.height)

	px := (2*s - 1) * c.halfWidth
	py := (1 - 2*t) * c.halfHeight
	direction := c.u.Multiply(px).Add(c.v.Multiply(py)).Subtract(c.w)

	return core.NewRay(c.origin, direction)
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
