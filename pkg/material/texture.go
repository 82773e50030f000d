package material

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Texture provides spatially-varying reflectance for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3

	// Max returns the per-channel maximum over the whole texture
	Max() core.Vec3

	// Average returns the per-channel mean over the whole texture
	Average() core.Vec3
}

// TextureLoader resolves a texture path from a material record
type TextureLoader func(path string) (Texture, error)

// ConstantTexture provides a uniform color
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Evaluate returns the color regardless of UV or position
func (c *ConstantTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return c.Color
}

// Max returns the color
func (c *ConstantTexture) Max() core.Vec3 {
	return c.Color
}

// Average returns the color
func (c *ConstantTexture) Average() core.Vec3 {
	return c.Color
}
