package renderer

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testFramebuffer() *Framebuffer {
	fb := NewFramebuffer(3, 2)
	fb.Set(0, 0, core.NewVec3(1, 0, 0))
	fb.Set(1, 0, core.NewVec3(0.25, 0.25, 0.25))
	fb.Set(2, 1, core.NewVec3(4, 4, 4))
	return fb
}

func TestFramebuffer_ToImage(t *testing.T) {
	img := testFramebuffer().ToImage(2.0)

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint8
	}{
		{"red", 0, 0, 255, 0, 0},
		{"gamma corrected grey", 1, 0, 128, 128, 128},
		{"clamped", 2, 1, 255, 255, 255},
		{"black", 0, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := img.RGBAAt(tt.x, tt.y)
			if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 255 {
				t.Errorf("Expected (%d,%d,%d), got %v", tt.r, tt.g, tt.b, c)
			}
		})
	}
}

func TestFramebuffer_Average(t *testing.T) {
	avg := testFramebuffer().Average()
	expected := core.NewVec3(5.25/6, 4.25/6, 4.25/6)
	if !avg.Equals(expected) {
		t.Errorf("Expected average %v, got %v", expected, avg)
	}
}

func TestFramebuffer_Encode(t *testing.T) {
	decoders := map[string]func(*bytes.Buffer) (image.Image, error){
		".png":  func(b *bytes.Buffer) (image.Image, error) { img, _, err := image.Decode(b); return img, err },
		".bmp":  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		".tiff": func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}

	fb := testFramebuffer()
	for ext, decode := range decoders {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := fb.Encode(&buf, ext, DefaultGamma); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			img, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Errorf("Expected 3x2 image, got %v", img.Bounds())
			}
			r, _, _, _ := img.At(0, 0).RGBA()
			if r>>8 != 255 {
				t.Errorf("Expected a red first pixel, got red channel %d", r>>8)
			}
		})
	}

	if err := fb.Encode(&bytes.Buffer{}, ".exr", DefaultGamma); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestFramebuffer_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := testFramebuffer().Save(path, DefaultGamma); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty file, got %v %v", info, err)
	}
}
