package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

var (
	ErrNoGeometry      = errors.New("scene has no geometry")
	ErrUnknownMaterial = errors.New("face references an unknown material")
	ErrUnknownScene    = errors.New("unknown built-in scene")
)

var logger = log.New("scene")

// Builder collects meshes and material records and assembles them into a Scene
type Builder struct {
	name      string
	camera    renderer.CameraConfig
	meshes    []*geometry.TriangleMesh
	materials []material.Record
	textures  map[string]material.Texture
	loader    material.TextureLoader
	selection lights.Selection
}

// NewBuilder creates an empty scene builder with a default camera
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		camera:   renderer.DefaultCameraConfig(),
		textures: make(map[string]material.Texture),
	}
}

// SetCamera sets the camera the scene is viewed from
func (b *Builder) SetCamera(camera renderer.CameraConfig) *Builder {
	b.camera = camera
	return b
}

// SetTextureLoader sets the loader for texture paths that were not registered
// with AddTexture
func (b *Builder) SetTextureLoader(loader material.TextureLoader) *Builder {
	b.loader = loader
	return b
}

// SetEmitterSelection sets how emitters are picked for direct lighting
func (b *Builder) SetEmitterSelection(selection lights.Selection) *Builder {
	b.selection = selection
	return b
}

// AddTexture registers an in-memory texture under a path usable by map_Kd / map_Ks
func (b *Builder) AddTexture(path string, tex material.Texture) *Builder {
	b.textures[path] = tex
	return b
}

// AddMaterial adds a material record and returns its material id
func (b *Builder) AddMaterial(rec material.Record) int {
	b.materials = append(b.materials, rec)
	return len(b.materials) - 1
}

// AddMesh adds a mesh, assigns its shape id and returns it
func (b *Builder) AddMesh(m *geometry.TriangleMesh) int {
	m.ShapeID = len(b.meshes)
	b.meshes = append(b.meshes, m)
	return m.ShapeID
}

// Build validates the collected data and constructs, in order, the
// reflectance models, the emitters and the acceleration structure
func (b *Builder) Build() (*Scene, error) {
	if len(b.meshes) == 0 {
		return nil, fmt.Errorf("scene %q: %w", b.name, ErrNoGeometry)
	}
	for _, m := range b.meshes {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("scene %q: %w", b.name, err)
		}
		for fi, f := range m.Faces {
			if f.MaterialID >= len(b.materials) || f.MaterialID < -1 {
				return nil, fmt.Errorf("scene %q mesh %q face %d material %d: %w", b.name, m.Name, fi, f.MaterialID, ErrUnknownMaterial)
			}
		}
	}

	s := &Scene{
		Name:      b.name,
		Camera:    b.camera,
		Meshes:    b.meshes,
		Materials: b.materials,
		bsdfs:     make([]material.BSDF, len(b.materials)),
		emitters:  lights.NewRegistryWithSelection(b.selection),
	}

	for id, rec := range b.materials {
		bsdf, err := material.FromRecord(rec, b.loadTexture)
		if errors.Is(err, material.ErrUnmappedIllum) {
			logger.Warningf("material %q uses illum %d which has no reflectance model; surfaces using it will not interact with light", rec.Name, rec.Illum)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", b.name, err)
		}
		s.bsdfs[id] = bsdf
	}

	var triangles []*geometry.Triangle
	for _, m := range b.meshes {
		bsdf := s.BSDF(m.MaterialID())
		if bsdf != nil && bsdf.IsEmissive() {
			e, err := lights.NewEmitter(m.ShapeID, bsdf.Emission(), m)
			if err != nil {
				return nil, fmt.Errorf("scene %q mesh %q: %w", b.name, m.Name, err)
			}
			s.emitters.Add(e)
		}
		triangles = append(triangles, m.Triangles()...)
		logger.Debugf("shape %d %q: %d triangles, area %.4f, material %d", m.ShapeID, m.Name, m.NumFaces(), m.Area(), m.MaterialID())
	}

	s.bvh = geometry.NewBVH(triangles)
	stats := s.bvh.Stats()
	logger.Infof("scene %q: %d shapes, %d triangles, %d materials, %s", b.name, len(b.meshes), len(triangles), len(b.materials), s.emitters)
	logger.Debugf("bvh: %d nodes, %d leaves, max depth %d, avg depth %.1f", stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth)

	return s, nil
}

func (b *Builder) loadTexture(path string) (material.Texture, error) {
	if tex, ok := b.textures[path]; ok {
		return tex, nil
	}
	if b.loader == nil {
		return nil, fmt.Errorf("texture %q is not registered", path)
	}
	return b.loader(path)
}
