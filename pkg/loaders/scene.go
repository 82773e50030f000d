package loaders

import (
	"path/filepath"
	"strings"

	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/scene"
)

// LoadScene resolves a scene reference: a path to a Wavefront OBJ file or
// the name of a built-in scene. Emitter selection applies to OBJ scenes.
func LoadScene(ref string, selection lights.Selection) (*scene.Scene, error) {
	if !strings.EqualFold(filepath.Ext(ref), ".obj") {
		return scene.NewBuiltin(ref)
	}

	builder, err := LoadWavefront(ref)
	if err != nil {
		return nil, err
	}
	return builder.SetEmitterSelection(selection).Build()
}
