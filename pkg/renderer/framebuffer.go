package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-light-transport/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultGamma is the display gamma applied when converting to 8-bit images
const DefaultGamma = 2.0

// Framebuffer holds the linear radiance estimate of every pixel. Tiles write
// disjoint regions, so workers share one framebuffer without locking.
type Framebuffer struct {
	Width, Height int
	pixels        []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, pixels: make([]core.Vec3, width*height)}
}

// Set stores the value of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, value core.Vec3) {
	fb.pixels[y*fb.Width+x] = value
}

// At returns the value of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.Width+x]
}

// Average returns the mean pixel value
func (fb *Framebuffer) Average() core.Vec3 {
	sum := core.Vec3{}
	for _, p := range fb.pixels {
		sum = sum.Add(p)
	}
	if len(fb.pixels) == 0 {
		return sum
	}
	return sum.Multiply(1.0 / float64(len(fb.pixels)))
}

// ToImage converts the framebuffer to an 8-bit image with gamma correction
// and clamping
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.At(x, y), gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with gamma correction and clamping
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	if !c.IsFinite() {
		c = core.Vec3{}
	}
	c = c.Clamp(0.0, 1.0).GammaCorrect(gamma)

	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}

// Save writes the framebuffer to path. The format is chosen from the file
// extension: .png, .bmp, .tif or .tiff.
func (fb *Framebuffer) Save(path string, gamma float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fb.Encode(f, filepath.Ext(path), gamma); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes the framebuffer in the format named by ext
func (fb *Framebuffer) Encode(w io.Writer, ext string, gamma float64) error {
	img := fb.ToImage(gamma)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
}
