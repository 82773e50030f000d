package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeTestImage stores a 2x2 image with white, red, green and blue pixels
func writeTestImage(t *testing.T, path string, encode func(io.Writer, image.Image) error) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestLoadImage(t *testing.T) {
	tests := []struct {
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"test.png", png.Encode},
		{"test.bmp", bmp.Encode},
		{"test.tif", func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }},
	}

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeTestImage(t, path, tt.encode)

			tex, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if tex.Width != 2 || tex.Height != 2 || len(tex.Pixels) != 4 {
				t.Fatalf("Expected 2x2 image, got %dx%d with %d pixels", tex.Width, tex.Height, len(tex.Pixels))
			}

			for i, want := range expected {
				got := tex.Pixels[i]
				if math.Abs(got.X-want.X) > 0.01 || math.Abs(got.Y-want.Y) > 0.01 || math.Abs(got.Z-want.Z) > 0.01 {
					t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
				}
			}
		})
	}
}

func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if !errors.Is(err, material.ErrTexture) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a texture error wrapping os.ErrNotExist, got %v", err)
	}
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.png")
	writeTestImage(t, path, png.Encode)

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if avg := tex.Average(); math.Abs(avg.X-0.5) > 0.01 || math.Abs(avg.Y-0.5) > 0.01 || math.Abs(avg.Z-0.5) > 0.01 {
		t.Errorf("Expected average (0.5, 0.5, 0.5), got %v", avg)
	}
	if max := tex.Max(); !max.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected max (1, 1, 1), got %v", max)
	}
}
