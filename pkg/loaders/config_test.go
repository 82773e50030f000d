package loaders

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/renderer"
)

const testConfig = `
[input]
objFile = "scenes/cornell.obj"

[camera]
fov = 40.0
o = [278.0, 273.0, -800.0]
at = [278.0, 273.0, 0.0]

[film]
width = 320
height = 240
output = "out/cornell.png"

[renderer]
spp = 64
seed = 7

[integrator]
type = "path"
isExplicit = false
maxDepth = 4
rrProb = 0.8
emitterSelection = "power"
`

func TestLoadConfig(t *testing.T) {
	dir := writeFiles(t, map[string]string{"cornell.toml": testConfig})
	cfg, err := LoadConfig(filepath.Join(dir, "cornell.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if got, want := cfg.ScenePath(), filepath.Join(dir, "scenes", "cornell.obj"); got != want {
		t.Errorf("Expected scene path %q, got %q", want, got)
	}
	if got, want := cfg.OutputPath(), filepath.Join(dir, "out", "cornell.png"); got != want {
		t.Errorf("Expected output path %q, got %q", want, got)
	}

	camera, err := cfg.ApplyCamera(renderer.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("ApplyCamera failed: %v", err)
	}
	if camera.VFov != 40 || !camera.Eye.Equals(core.NewVec3(278, 273, -800)) || !camera.At.Equals(core.NewVec3(278, 273, 0)) {
		t.Errorf("Unexpected camera %+v", camera)
	}
	if !camera.Up.Equals(renderer.DefaultCameraConfig().Up) {
		t.Errorf("Expected the default up vector to be kept, got %v", camera.Up)
	}

	render := cfg.ApplyRender(renderer.DefaultRenderConfig())
	if render.Width != 320 || render.Height != 240 || render.SamplesPerPixel != 64 || render.Seed != 7 {
		t.Errorf("Unexpected render config %+v", render)
	}
	if render.TileSize != renderer.DefaultRenderConfig().TileSize {
		t.Errorf("Expected the default tile size to be kept, got %d", render.TileSize)
	}

	integ, err := cfg.ApplyIntegrator(integrator.DefaultConfig())
	if err != nil {
		t.Fatalf("ApplyIntegrator failed: %v", err)
	}
	defaults := integrator.DefaultConfig()
	if integ.Kind != integrator.KindPath || integ.IsExplicit || integ.MaxDepth != 4 || integ.RRProb != 0.8 || integ.RRDepth != defaults.RRDepth {
		t.Errorf("Unexpected integrator config %+v", integ)
	}

	if selection, err := cfg.EmitterSelection(); err != nil || selection != lights.SelectPower {
		t.Errorf("Expected power selection, got %v (%v)", selection, err)
	}
	if cfg.Gamma(2.2) != 2.2 {
		t.Errorf("Expected the fallback gamma, got %v", cfg.Gamma(2.2))
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		toml     string
		apply    func(*FileConfig) error
		expected error
	}{
		{"malformed file", "[camera\nfov = 1", nil, ErrInvalidConfig},
		{"wrong camera vector", "[camera]\no = [1.0, 2.0]", func(c *FileConfig) error {
			_, err := c.ApplyCamera(renderer.DefaultCameraConfig())
			return err
		}, ErrInvalidConfig},
		{"unknown integrator", "[integrator]\ntype = \"photon\"", func(c *FileConfig) error {
			_, err := c.ApplyIntegrator(integrator.DefaultConfig())
			return err
		}, integrator.ErrUnknownKind},
		{"unknown selection", "[integrator]\nemitterSelection = \"random\"", func(c *FileConfig) error {
			_, err := c.EmitterSelection()
			return err
		}, lights.ErrUnknownSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig(strings.NewReader(tt.toml), "")
			if err == nil && tt.apply != nil {
				err = tt.apply(cfg)
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}
