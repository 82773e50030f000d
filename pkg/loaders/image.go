package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// LoadImage decodes a PNG, JPEG, BMP or TIFF file into a texture with
// channels in [0, 1]. The format is detected from the file header.
func LoadImage(path string) (*material.ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", material.ErrTexture, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", material.ErrTexture, path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	texels := make([]core.Vec3, 0, w*h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			texels = append(texels, core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0/0xffff))
		}
	}

	logger.Debugf("loaded %s texture %s (%dx%d)", format, path, w, h)
	return material.NewImageTexture(w, h, texels), nil
}

// LoadTexture matches material.TextureLoader and backs map_Kd and map_Ks
func LoadTexture(path string) (material.Texture, error) {
	tex, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return tex, nil
}
