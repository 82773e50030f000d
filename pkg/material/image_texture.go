package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]

	max     core.Vec3
	average core.Vec3
}

// NewImageTexture creates a new image texture and precomputes its statistics
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	t := &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}

	if len(pixels) > 0 {
		t.max = core.Splat(math.Inf(-1))
		sum := core.Vec3{}
		for _, p := range pixels {
			t.max = core.NewVec3(math.Max(t.max.X, p.X), math.Max(t.max.Y, p.Y), math.Max(t.max.Z, p.Z))
			sum = sum.Add(p)
		}
		t.average = sum.Multiply(1.0 / float64(len(pixels)))
	}

	return t
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if len(t.Pixels) == 0 {
		return core.Vec3{}
	}

	// Wrap UV coordinates to [0, 1)
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	x = max(0, min(x, t.Width-1))
	y = max(0, min(y, t.Height-1))

	return t.Pixels[y*t.Width+x]
}

// Max returns the per-channel maximum texel
func (t *ImageTexture) Max() core.Vec3 {
	return t.max
}

// Average returns the per-channel mean texel
func (t *ImageTexture) Average() core.Vec3 {
	return t.average
}
