package scene

import (
	"bytes"
	"fmt"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

// Scene contains all the elements needed for rendering. It is assembled by a
// Builder and read-only afterwards, so it can be shared by all render workers.
type Scene struct {
	Name      string
	Camera    renderer.CameraConfig
	Meshes    []*geometry.TriangleMesh // indexed by shape id
	Materials []material.Record        // indexed by material id

	bsdfs    []material.BSDF // nil for materials without a reflectance model
	emitters *lights.Registry
	bvh      *geometry.BVH
}

// Intersect returns the nearest surface hit along the ray
func (s *Scene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	return s.bvh.Intersect(ray, 0, math.Inf(1))
}

// BSDF returns the reflectance model of a material, or nil when the material
// does not interact with light
func (s *Scene) BSDF(materialID int) material.BSDF {
	if materialID < 0 || materialID >= len(s.bsdfs) {
		return nil
	}
	return s.bsdfs[materialID]
}

// Emission returns the radiance leaving the hit point towards the ray origin.
// Emitters are one-sided: the back of an emissive face is dark.
func (s *Scene) Emission(si *material.SurfaceInteraction) core.Vec3 {
	bsdf := s.BSDF(si.MaterialID)
	if bsdf == nil || !bsdf.IsEmissive() {
		return core.Vec3{}
	}
	if si.FrameNg.CosTheta(si.ToWorld(si.Wo)) <= 0 {
		return core.Vec3{}
	}
	return bsdf.Emission()
}

// Emitters returns the emitter registry
func (s *Scene) Emitters() *lights.Registry {
	return s.emitters
}

// Bounds returns the center and radius of the sphere enclosing the scene
func (s *Scene) Bounds() (core.Vec3, float64) {
	return s.bvh.Center, s.bvh.Radius
}

// BVH returns the acceleration structure
func (s *Scene) BVH() *geometry.BVH {
	return s.bvh
}

// TriangleCount returns the number of triangles over all meshes
func (s *Scene) TriangleCount() int {
	count := 0
	for _, m := range s.Meshes {
		count += m.NumFaces()
	}
	return count
}

// Summary builds a tabular description of the shapes and their materials
func (s *Scene) Summary() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shape", "Name", "Triangles", "Area", "Material", "Model", "Emitter"})

	for _, m := range s.Meshes {
		matName, model, emitter := "-", "none", "-"
		if id := m.MaterialID(); id >= 0 && id < len(s.Materials) {
			matName = s.Materials[id].Name
			if bsdf := s.bsdfs[id]; bsdf != nil {
				model = bsdf.Kind().String()
			}
		}
		if id := s.emitters.IDByShapeID(m.ShapeID); id >= 0 {
			emitter = fmt.Sprintf("#%d %v", id, s.emitters.ByID(id).Radiance)
		}
		table.Append([]string{
			fmt.Sprintf("%d", m.ShapeID),
			m.Name,
			fmt.Sprintf("%d", m.NumFaces()),
			fmt.Sprintf("%.4f", m.Area()),
			matName,
			model,
			emitter,
		})
	}

	stats := s.bvh.Stats()
	table.SetFooter([]string{"Total", fmt.Sprintf("%d shapes", len(s.Meshes)), fmt.Sprintf("%d", s.TriangleCount()),
		fmt.Sprintf("bvh depth %d", stats.MaxDepth), fmt.Sprintf("%d materials", len(s.Materials)), " ",
		fmt.Sprintf("%d emitters", s.emitters.Count())})

	table.Render()
	return buf.String()
}
