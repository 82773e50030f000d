package loaders

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

const testMaterials = `# two materials
newmtl white
Kd 0.7 0.7 0.7
illum 7

newmtl light
Kd 0 0 0
Ke 10 10 10
illum 7

newmtl shiny
Kd 0.2 0.2 0.2
Ks 0.5 0.5 0.5
Ns 100
illum 8
map_Kd -bm 1 textures/wood.png
`

const testScene = `mtllib scene.mtl
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0

o floor
usemtl white
f 4/4/1 3/3/1 2/2/1 1/1/1

o light
usemtl light
v -0.5 2 -0.5
v 0.5 2 -0.5
v 0 2 0.5
f -3 -2 -1
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return dir
}

func TestLoadWavefront(t *testing.T) {
	dir := writeFiles(t, map[string]string{"scene.obj": testScene, "scene.mtl": testMaterials})
	if err := os.Mkdir(filepath.Join(dir, "textures"), 0o755); err != nil {
		t.Fatalf("Failed to create texture dir: %v", err)
	}
	writeTestImage(t, filepath.Join(dir, "textures", "wood.png"), png.Encode)

	sc, err := LoadScene(filepath.Join(dir, "scene.obj"), lights.SelectUniform)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if sc.Name != "scene" {
		t.Errorf("Expected scene name from the file, got %q", sc.Name)
	}
	if len(sc.Meshes) != 2 {
		t.Fatalf("Expected 2 meshes, got %d", len(sc.Meshes))
	}

	floor, light := sc.Meshes[0], sc.Meshes[1]
	if floor.Name != "floor" || floor.NumFaces() != 2 {
		t.Errorf("Expected the quad to be split into 2 triangles, got %q with %d", floor.Name, floor.NumFaces())
	}
	if len(floor.Vertices) != 4 || len(floor.UVs) != 4 || len(floor.Normals) != 1 {
		t.Errorf("Expected 4 vertices, 4 uvs and 1 normal, got %d, %d and %d", len(floor.Vertices), len(floor.UVs), len(floor.Normals))
	}
	if light.Name != "light" || light.NumFaces() != 1 {
		t.Errorf("Expected a single light triangle, got %q with %d", light.Name, light.NumFaces())
	}
	if sc.Materials[floor.MaterialID()].Name != "white" || sc.Materials[light.MaterialID()].Name != "light" {
		t.Errorf("Unexpected materials %d and %d", floor.MaterialID(), light.MaterialID())
	}

	if sc.Emitters().Count() != 1 || sc.Emitters().IDByShapeID(light.ShapeID) != 0 {
		t.Errorf("Expected the light to be the only emitter: %s", sc.Emitters())
	}

	// the light faces down onto the floor
	si, ok := sc.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)))
	if !ok || si.ShapeID != light.ShapeID {
		t.Fatal("Expected to hit the light from below")
	}
	if e := sc.Emission(si); !e.Equals(core.Splat(10)) {
		t.Errorf("Expected the light to emit downwards, got %v", e)
	}

	// texture paths are relative to the material library
	shiny := sc.Materials[2]
	if shiny.Illum != material.IllumMixture || shiny.MapKd != filepath.Join(dir, "textures", "wood.png") {
		t.Errorf("Unexpected shiny material %+v", shiny)
	}
}

func TestLoadWavefront_DefaultMaterial(t *testing.T) {
	dir := writeFiles(t, map[string]string{"tri.obj": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"})

	sc, err := LoadScene(filepath.Join(dir, "tri.obj"), lights.SelectUniform)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(sc.Meshes) != 1 || sc.Meshes[0].Name != "default" {
		t.Fatalf("Expected a single default mesh, got %d", len(sc.Meshes))
	}
	rec := sc.Materials[sc.Meshes[0].MaterialID()]
	if rec.Illum != material.IllumDiffuse || !rec.Kd.Equals(core.Splat(0.7)) {
		t.Errorf("Unexpected default material %+v", rec)
	}
}

func TestReadWavefront_Errors(t *testing.T) {
	tests := []struct {
		name     string
		obj      string
		expected error
	}{
		{"short vertex", "v 1 2\n", ErrUnsupportedSyntax},
		{"bad number", "v 1 2 x\n", ErrUnsupportedSyntax},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrUnsupportedSyntax},
		{"mixed face formats", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2 3\n", ErrUnsupportedSyntax},
		{"vertex index past the end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrIndexOutOfRange},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrIndexOutOfRange},
		{"undefined material", "usemtl missing\n", ErrUndefinedMaterial},
		{"unnamed object", "o\n", ErrUnsupportedSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWavefront(strings.NewReader(tt.obj), "broken", "")
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			if err != nil && !strings.Contains(err.Error(), "[broken: ") {
				t.Errorf("Expected the error to name the file and line, got %v", err)
			}
		})
	}
}

func TestReadMaterials(t *testing.T) {
	records, err := ReadMaterials(strings.NewReader(testMaterials), "scene.mtl", "assets")
	if err != nil {
		t.Fatalf("ReadMaterials failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 materials, got %d", len(records))
	}

	shiny := records[2]
	if shiny.Name != "shiny" || shiny.Ns != 100 || !shiny.Ks.Equals(core.Splat(0.5)) {
		t.Errorf("Unexpected record %+v", shiny)
	}
	if !records[1].Ke.Equals(core.Splat(10)) {
		t.Errorf("Expected emission 10, got %v", records[1].Ke)
	}

	if _, err := ReadMaterials(strings.NewReader("Kd 1 1 1\n"), "orphan.mtl", ""); !errors.Is(err, ErrUnsupportedSyntax) {
		t.Errorf("Expected ErrUnsupportedSyntax before newmtl, got %v", err)
	}
}

func TestLoadScene_Builtin(t *testing.T) {
	sc, err := LoadScene("cornell", lights.SelectUniform)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if sc.Emitters().Count() == 0 {
		t.Error("Expected the built-in scene to have an emitter")
	}
}
