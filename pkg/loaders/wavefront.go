package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/scene"
)

var logger = log.New("loaders")

// faceVertex holds the zero based coordinate indices of one face corner.
// Missing uv or normal indices are -1.
type faceVertex struct {
	v, uv, n int
}

type wavefrontReader struct {
	builder *scene.Builder

	// A map of material names to material index.
	matNameToIndex map[string]int

	// Currently selected material index, -1 until usemtl or the first face.
	curMaterial int

	// Global coordinate lists shared by all objects of the file.
	vertexList []core.Vec3
	normalList []core.Vec3
	uvList     []core.Vec2

	// The object receiving faces and its remapping of global indices.
	curMesh *geometry.TriangleMesh
	remap   map[faceVertex]int
	meshes  []*geometry.TriangleMesh
}

// LoadWavefront parses a Wavefront OBJ file and the material libraries it
// references. The returned builder carries the meshes and materials; the
// caller sets the camera before building. Textures referenced by map_Kd and
// map_Ks are loaded from disk relative to their material library.
func LoadWavefront(path string) (*scene.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadWavefront(f, name, filepath.Dir(path))
}

// ReadWavefront parses OBJ statements from r. Relative mtllib paths are
// resolved against dir.
func ReadWavefront(r io.Reader, name, dir string) (*scene.Builder, error) {
	logger.Noticef("parsing scene %q", name)
	start := time.Now()

	reader := &wavefrontReader{
		builder:        scene.NewBuilder(name).SetTextureLoader(LoadTexture),
		matNameToIndex: make(map[string]int),
		curMaterial:    -1,
	}
	if err := reader.parse(r, name, dir); err != nil {
		return nil, err
	}

	for _, m := range reader.meshes {
		if len(m.Faces) > 0 {
			reader.builder.AddMesh(m)
		}
	}

	logger.Infof("parsed %d objects, %d vertices and %d materials in %s",
		len(reader.meshes), len(reader.vertexList), len(reader.matNameToIndex), time.Since(start))
	return reader.builder, nil
}

// Generate an error annotated with the file and line it was found at.
func emitError(file string, line int, err error) error {
	return fmt.Errorf("[%s: %d] %w", file, line, err)
}

// Parse wavefront object scene format.
func (r *wavefrontReader) parse(in io.Reader, file, dir string) error {
	lineNum := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "mtllib":
			if len(lineTokens) < 2 {
				return emitError(file, lineNum, syntaxError(lineTokens, "expected at least 1 argument"))
			}
			for _, lib := range lineTokens[1:] {
				if err = r.loadMaterials(resolvePath(dir, lib)); err != nil {
					break
				}
			}
		case "usemtl":
			if len(lineTokens) != 2 {
				return emitError(file, lineNum, syntaxError(lineTokens, "expected 1 argument"))
			}
			matIndex, exists := r.matNameToIndex[lineTokens[1]]
			if !exists {
				return emitError(file, lineNum, fmt.Errorf("%w %q", ErrUndefinedMaterial, lineTokens[1]))
			}
			r.curMaterial = matIndex
		case "v":
			var v core.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				r.vertexList = append(r.vertexList, v)
			}
		case "vn":
			var v core.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				r.normalList = append(r.normalList, v.Normalize())
			}
		case "vt":
			var v core.Vec2
			if v, err = parseVec2(lineTokens); err == nil {
				r.uvList = append(r.uvList, v)
			}
		case "g", "o":
			if len(lineTokens) < 2 {
				return emitError(file, lineNum, syntaxError(lineTokens, "expected an object name"))
			}
			r.beginMesh(strings.Join(lineTokens[1:], " "))
		case "f":
			err = r.parseFace(lineTokens)
		case "s", "l", "p":
			// smoothing groups, lines and points carry nothing to render
		default:
			logger.Debugf("[%s: %d] ignoring statement %q", file, lineNum, lineTokens[0])
		}

		if err != nil {
			return emitError(file, lineNum, err)
		}
	}
	return scanner.Err()
}

// beginMesh starts a new object. An object without faces is renamed instead.
func (r *wavefrontReader) beginMesh(name string) {
	if r.curMesh != nil && len(r.curMesh.Faces) == 0 {
		r.curMesh.Name = name
		return
	}
	r.curMesh = geometry.NewTriangleMesh(name)
	r.remap = make(map[faceVertex]int)
	r.meshes = append(r.meshes, r.curMesh)
}

// Parse face definition. Each face argument is comprised of 1, 2 or 3
// indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the
// end of the coordinate list. Polygons are split into a triangle fan.
func (r *wavefrontReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return syntaxError(lineTokens, fmt.Sprintf("expected at least 3 arguments; got %d", len(lineTokens)-1))
	}

	corners := make([]faceVertex, 0, len(lineTokens)-1)
	expIndices := 0
	for arg, token := range lineTokens[1:] {
		vTokens := strings.Split(token, "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return syntaxError(lineTokens, fmt.Sprintf("argument %d has %d indices, expected %d", arg, len(vTokens), expIndices))
		}
		if len(vTokens) > 3 || vTokens[0] == "" {
			return syntaxError(lineTokens, fmt.Sprintf("malformed argument %q", token))
		}

		corner := faceVertex{uv: -1, n: -1}
		var err error
		if corner.v, err = selectFaceCoordIndex(vTokens[0], len(r.vertexList)); err != nil {
			return fmt.Errorf("vertex of argument %d: %w", arg, err)
		}
		if len(vTokens) > 1 && vTokens[1] != "" {
			if corner.uv, err = selectFaceCoordIndex(vTokens[1], len(r.uvList)); err != nil {
				return fmt.Errorf("tex coord of argument %d: %w", arg, err)
			}
		}
		if len(vTokens) > 2 && vTokens[2] != "" {
			if corner.n, err = selectFaceCoordIndex(vTokens[2], len(r.normalList)); err != nil {
				return fmt.Errorf("normal of argument %d: %w", arg, err)
			}
		}
		corners = append(corners, corner)
	}

	// If no object has been defined create a default one
	if r.curMesh == nil {
		r.beginMesh("default")
	}
	// If no material defined select the default
	if r.curMaterial < 0 {
		r.curMaterial = r.defaultMaterial()
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := r.meshVertex(corners[0]), r.meshVertex(corners[i]), r.meshVertex(corners[i+1])
		r.curMesh.Faces = append(r.curMesh.Faces, geometry.Face{
			V:          [3]int{a.v, b.v, c.v},
			N:          [3]int{a.n, b.n, c.n},
			UV:         [3]int{a.uv, b.uv, c.uv},
			MaterialID: r.curMaterial,
		})
	}
	return nil
}

// meshVertex copies the coordinates a corner references into the current
// mesh, reusing entries already copied, and returns their mesh indices
func (r *wavefrontReader) meshVertex(corner faceVertex) faceVertex {
	local := faceVertex{uv: -1, n: -1}
	local.v = r.localIndex(faceVertex{v: corner.v, uv: -1, n: -1}, func() int { return r.curMesh.AddVertex(r.vertexList[corner.v]) })
	if corner.uv >= 0 {
		local.uv = r.localIndex(faceVertex{v: -1, uv: corner.uv, n: -1}, func() int { return r.curMesh.AddUV(r.uvList[corner.uv]) })
	}
	if corner.n >= 0 {
		local.n = r.localIndex(faceVertex{v: -1, uv: -1, n: corner.n}, func() int { return r.curMesh.AddNormal(r.normalList[corner.n]) })
	}
	return local
}

func (r *wavefrontReader) localIndex(key faceVertex, add func() int) int {
	if index, ok := r.remap[key]; ok {
		return index
	}
	index := add()
	r.remap[key] = index
	return index
}

// Create and select a default material for surfaces not using one.
func (r *wavefrontReader) defaultMaterial() int {
	const matName = ""
	if matIndex, exists := r.matNameToIndex[matName]; exists {
		return matIndex
	}
	matIndex := r.builder.AddMaterial(material.Record{Name: "default", Illum: material.IllumDiffuse, Kd: core.Splat(0.7)})
	r.matNameToIndex[matName] = matIndex
	return matIndex
}

// loadMaterials parses a material library from disk
func (r *wavefrontReader) loadMaterials(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := ReadMaterials(f, path, filepath.Dir(path))
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, exists := r.matNameToIndex[rec.Name]; exists {
			return fmt.Errorf("%s: material %q already defined", path, rec.Name)
		}
		r.matNameToIndex[rec.Name] = r.builder.AddMaterial(rec)
	}
	return nil
}

// ReadMaterials parses a Wavefront material library. Texture paths are
// resolved against dir.
func ReadMaterials(in io.Reader, file, dir string) ([]material.Record, error) {
	var records []material.Record
	var cur *material.Record

	lineNum := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) != 2 {
				return nil, emitError(file, lineNum, syntaxError(lineTokens, "expected 1 argument"))
			}
			// illum 2 is the library default and maps to the glossy model
			records = append(records, material.Record{Name: lineTokens[1], Illum: 2})
			cur = &records[len(records)-1]
			continue
		}
		if cur == nil {
			return nil, emitError(file, lineNum, syntaxError(lineTokens, "statement before newmtl"))
		}

		var err error
		switch lineTokens[0] {
		case "Kd":
			cur.Kd, err = parseVec3(lineTokens)
		case "Ks":
			cur.Ks, err = parseVec3(lineTokens)
		case "Ke":
			cur.Ke, err = parseVec3(lineTokens)
		case "Ns":
			cur.Ns, err = parseFloat(lineTokens)
		case "illum":
			var illum float64
			if illum, err = parseFloat(lineTokens); err == nil {
				cur.Illum = int(illum)
			}
		case "map_Kd", "map_Ks":
			if len(lineTokens) < 2 {
				err = syntaxError(lineTokens, "expected a texture path")
				break
			}
			// options such as -bm precede the path
			texPath := resolvePath(dir, lineTokens[len(lineTokens)-1])
			if lineTokens[0] == "map_Kd" {
				cur.MapKd = texPath
			} else {
				cur.MapKs = texPath
			}
		default:
			logger.Debugf("[%s: %d] ignoring material statement %q", file, lineNum, lineTokens[0])
		}

		if err != nil {
			return nil, emitError(file, lineNum, err)
		}
	}
	return records, scanner.Err()
}

func resolvePath(dir, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

func syntaxError(lineTokens []string, detail string) error {
	return fmt.Errorf("%w for '%s'; %s", ErrUnsupportedSyntax, lineTokens[0], detail)
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrUnsupportedSyntax, err)
	}

	offset := index - 1
	if index < 0 {
		offset = coordListLen + index
	}
	if index == 0 || offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, coordListLen)
	}
	return offset, nil
}

// Parse a float scalar value.
func parseFloat(lineTokens []string) (float64, error) {
	if len(lineTokens) < 2 {
		return 0, syntaxError(lineTokens, "expected 1 argument")
	}
	val, err := strconv.ParseFloat(lineTokens[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedSyntax, err)
	}
	return val, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, syntaxError(lineTokens, fmt.Sprintf("expected 3 arguments; got %d", len(lineTokens)-1))
	}
	var coords [3]float64
	for i := range coords {
		coord, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("%w: %v", ErrUnsupportedSyntax, err)
		}
		coords[i] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// Parse a Vec2 row. A third texture coordinate is ignored.
func parseVec2(lineTokens []string) (core.Vec2, error) {
	if len(lineTokens) < 3 {
		return core.Vec2{}, syntaxError(lineTokens, fmt.Sprintf("expected 2 arguments; got %d", len(lineTokens)-1))
	}
	var coords [2]float64
	for i := range coords {
		coord, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec2{}, fmt.Errorf("%w: %v", ErrUnsupportedSyntax, err)
		}
		coords[i] = coord
	}
	return core.NewVec2(coords[0], coords[1]), nil
}
