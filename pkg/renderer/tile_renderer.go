package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
)

// Integrator estimates the radiance arriving along a primary ray
type Integrator interface {
	Render(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, also selects the random stream
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	camera          *Camera
	integrator      Integrator
	samplesPerPixel int
	seed            int64
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *Camera, integrator Integrator, samplesPerPixel int, seed int64) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		integrator:      integrator,
		samplesPerPixel: samplesPerPixel,
		seed:            seed,
	}
}

// RenderTile renders every pixel of the tile into the framebuffer. The tile
// owns its random stream, so the result does not depend on which worker
// renders it or when. Cancellation is checked before every pixel.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, fb *Framebuffer) (TileStats, error) {
	start := time.Now()
	sampler := core.NewSeededSampler(core.SeedFor(tr.seed, tile.ID))
	stats := TileStats{TileID: tile.ID}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			fb.Set(x, y, tr.renderPixel(x, y, sampler))
			stats.Pixels++
			stats.Samples += tr.samplesPerPixel
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

func (tr *TileRenderer) renderPixel(x, y int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for s := 0; s < tr.samplesPerPixel; s++ {
		ray := tr.camera.GetRay(x, y, sampler.Get2D())
		ps.AddSample(tr.integrator.Render(ray, sampler))
	}
	return ps.GetColor()
}
