package loaders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// FileConfig is a TOML render configuration. Keys left out of the file keep
// the values of whatever configuration they are applied to.
//
//	[input]
//	objFile = "cornell.obj"
//
//	[camera]
//	fov = 40.0
//	o = [278.0, 273.0, -800.0]
//	at = [278.0, 273.0, 0.0]
//	up = [0.0, 1.0, 0.0]
//
//	[film]
//	width = 512
//	height = 512
//	output = "cornell.png"
//
//	[renderer]
//	spp = 64
//
//	[integrator]
//	type = "path"
//	isExplicit = true
//	maxDepth = -1
//	rrDepth = 5
//	rrProb = 0.95
type FileConfig struct {
	Input      InputSection      `toml:"input"`
	Camera     CameraSection     `toml:"camera"`
	Film       FilmSection       `toml:"film"`
	Renderer   RendererSection   `toml:"renderer"`
	Integrator IntegratorSection `toml:"integrator"`

	dir string
}

type InputSection struct {
	ObjFile string `toml:"objFile"` // relative to the configuration file
	Scene   string `toml:"scene"`   // built-in scene name, used when objFile is empty
}

type CameraSection struct {
	Fov *float64  `toml:"fov"`
	O   []float64 `toml:"o"`
	At  []float64 `toml:"at"`
	Up  []float64 `toml:"up"`
}

type FilmSection struct {
	Width  int      `toml:"width"`
	Height int      `toml:"height"`
	Output string   `toml:"output"`
	Gamma  *float64 `toml:"gamma"`
}

type RendererSection struct {
	Spp      int    `toml:"spp"`
	Seed     *int64 `toml:"seed"`
	Workers  int    `toml:"workers"`
	TileSize int    `toml:"tileSize"`
}

type IntegratorSection struct {
	Type             string   `toml:"type"`
	IsExplicit       *bool    `toml:"isExplicit"`
	MaxDepth         *int     `toml:"maxDepth"`
	RRDepth          *int     `toml:"rrDepth"`
	RRProb           *float64 `toml:"rrProb"`
	EmitterSamples   *int     `toml:"emitterSamples"`
	BSDFSamples      *int     `toml:"bsdfSamples"`
	Samples          *int     `toml:"samples"`  // ambient or reflection occlusion rays
	Exponent         *float64 `toml:"exponent"` // reflection occlusion lobe
	EmitterSelection string   `toml:"emitterSelection"`
}

// LoadConfig reads a TOML render configuration from disk
func LoadConfig(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a TOML render configuration. Relative input paths are
// resolved against dir.
func ParseConfig(r io.Reader, dir string) (*FileConfig, error) {
	cfg := &FileConfig{dir: dir}
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warningf("ignoring unknown configuration key %q", key.String())
	}
	return cfg, nil
}

// ScenePath returns the OBJ file to load, or "" when none is configured
func (c *FileConfig) ScenePath() string {
	if c.Input.ObjFile == "" {
		return ""
	}
	return resolvePath(c.dir, c.Input.ObjFile)
}

// OutputPath returns the image file to write, or "" when none is configured
func (c *FileConfig) OutputPath() string {
	if c.Film.Output == "" {
		return ""
	}
	return resolvePath(c.dir, c.Film.Output)
}

// ApplyCamera overrides the configured camera fields of base
func (c *FileConfig) ApplyCamera(base renderer.CameraConfig) (renderer.CameraConfig, error) {
	if c.Camera.Fov != nil {
		base.VFov = *c.Camera.Fov
	}
	for _, field := range []struct {
		name   string
		values []float64
		target *core.Vec3
	}{
		{"o", c.Camera.O, &base.Eye},
		{"at", c.Camera.At, &base.At},
		{"up", c.Camera.Up, &base.Up},
	} {
		if field.values == nil {
			continue
		}
		if len(field.values) != 3 {
			return base, fmt.Errorf("%w: camera.%s needs 3 components, got %d", ErrInvalidConfig, field.name, len(field.values))
		}
		*field.target = core.NewVec3(field.values[0], field.values[1], field.values[2])
	}
	return base, nil
}

// ApplyRender overrides the configured film and renderer fields of base
func (c *FileConfig) ApplyRender(base renderer.RenderConfig) renderer.RenderConfig {
	if c.Film.Width > 0 {
		base.Width = c.Film.Width
	}
	if c.Film.Height > 0 {
		base.Height = c.Film.Height
	}
	if c.Renderer.Spp > 0 {
		base.SamplesPerPixel = c.Renderer.Spp
	}
	if c.Renderer.Seed != nil {
		base.Seed = *c.Renderer.Seed
	}
	if c.Renderer.Workers > 0 {
		base.NumWorkers = c.Renderer.Workers
	}
	if c.Renderer.TileSize > 0 {
		base.TileSize = c.Renderer.TileSize
	}
	return base
}

// Gamma returns the configured display gamma or fallback
func (c *FileConfig) Gamma(fallback float64) float64 {
	if c.Film.Gamma != nil {
		return *c.Film.Gamma
	}
	return fallback
}

// ApplyIntegrator overrides the configured integrator fields of base
func (c *FileConfig) ApplyIntegrator(base integrator.Config) (integrator.Config, error) {
	in := c.Integrator
	if in.Type != "" {
		kind, err := integrator.ParseKind(in.Type)
		if err != nil {
			return base, err
		}
		base.Kind = kind
	}

	setInt := func(target *int, value *int) {
		if value != nil {
			*target = *value
		}
	}
	setFloat := func(target *float64, value *float64) {
		if value != nil {
			*target = *value
		}
	}

	if in.IsExplicit != nil {
		base.IsExplicit = *in.IsExplicit
	}
	setInt(&base.MaxDepth, in.MaxDepth)
	setInt(&base.RRDepth, in.RRDepth)
	setFloat(&base.RRProb, in.RRProb)
	setInt(&base.EmitterSamples, in.EmitterSamples)
	setInt(&base.BSDFSamples, in.BSDFSamples)
	setInt(&base.AOSamples, in.Samples)
	setInt(&base.ROSamples, in.Samples)
	setFloat(&base.ROExponent, in.Exponent)
	return base, nil
}

// EmitterSelection returns the configured emitter selection strategy
func (c *FileConfig) EmitterSelection() (lights.Selection, error) {
	return lights.ParseSelection(c.Integrator.EmitterSelection)
}
