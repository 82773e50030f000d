package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
)

// RenderConfig contains the image and sampling configuration
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of primary rays per pixel
	TileSize        int   // Size of each square tile
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed of the per-tile random streams
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           512,
		Height:          512,
		SamplesPerPixel: 16,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            260744278,
	}
}

// Validate checks the configuration before any work is started
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer drives an integrator over every pixel of the image
type Raytracer struct {
	camera     *Camera
	integrator Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer viewing the scene through the given camera
func NewRaytracer(camera CameraConfig, integrator Integrator, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		camera:     NewCamera(camera, config.Width, config.Height),
		integrator: integrator,
		config:     config,
		logger:     logger,
	}, nil
}

// Render renders the image with a pool of workers. Every tile draws from its
// own random stream, so the output depends only on the configuration and not
// on the number of workers. A cancelled context stops the render between
// primary rays and yields ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	tileRenderer := NewTileRenderer(rt.camera, rt.integrator, rt.config.SamplesPerPixel, rt.config.Seed)
	pool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
	}

	rt.logger.Printf("rendering %dx%d at %d spp: %d tiles on %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Framebuffer: fb})
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.addTile(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		if errors.Is(renderErr, context.Canceled) || errors.Is(renderErr, context.DeadlineExceeded) {
			return fb, stats, fmt.Errorf("%w after %s: %v", ErrInterrupted, stats.Duration, renderErr)
		}
		return fb, stats, renderErr
	}

	stats.AverageRadiance = fb.Average()
	stats.AverageLuminance = CalculateAverageLuminance(fb.ToImage(DefaultGamma))
	rt.logger.Printf("render completed in %s\n", stats.Duration)
	return fb, stats, nil
}
