package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// Tessellation used for the analytic spheres of the built-in scenes
const (
	sphereSegments = 48
	sphereRings    = 24
)

// NewSphereLightScene creates a diffuse sphere lit by a single spherical emitter
func NewSphereLightScene() (*Scene, error) {
	b := NewBuilder("sphere-light")
	b.SetCamera(renderer.CameraConfig{
		Eye:  core.NewVec3(0, 0, 6),
		At:   core.NewVec3(0, 0, 0),
		Up:   core.NewVec3(0, 1, 0),
		VFov: 30,
	})

	diffuse := b.AddMaterial(material.Record{
		Name:  "diffuse",
		Illum: material.IllumDiffuse,
		Kd:    core.NewVec3(0.8, 0.8, 0.8),
	})
	light := b.AddMaterial(material.Record{
		Name:  "light",
		Illum: material.IllumDiffuse,
		Ke:    core.NewVec3(10, 10, 10),
	})

	b.AddMesh(geometry.NewUVSphere("sphere", core.NewVec3(0, 0, 0), 1, sphereSegments, sphereRings, diffuse, false))
	b.AddMesh(geometry.NewUVSphere("emitter", core.NewVec3(1.5, 2.5, 2), 0.5, sphereSegments, sphereRings, light, false))

	return b.Build()
}

// NewFurnaceScene creates a diffuse sphere enclosed by an inward facing
// emitter of uniform radiance. The enclosure itself reflects nothing, so the
// radiance leaving the inner sphere is albedo times radiance everywhere.
func NewFurnaceScene(albedo, radiance float64) (*Scene, error) {
	b := NewBuilder("furnace")
	b.SetCamera(renderer.CameraConfig{
		Eye:  core.NewVec3(0, 0, 3),
		At:   core.NewVec3(0, 0, 0),
		Up:   core.NewVec3(0, 1, 0),
		VFov: 40,
	})

	inner := b.AddMaterial(material.Record{
		Name:  "inner",
		Illum: material.IllumDiffuse,
		Kd:    core.Splat(albedo),
	})
	enclosure := b.AddMaterial(material.Record{
		Name:  "enclosure",
		Illum: material.IllumDiffuse,
		Ke:    core.Splat(radiance),
	})

	// flat shading keeps every shading hemisphere inside the enclosure's view
	innerMesh := geometry.NewUVSphere("inner", core.NewVec3(0, 0, 0), 1, sphereSegments, sphereRings, inner, false)
	innerMesh.ClearNormals()
	b.AddMesh(innerMesh)
	b.AddMesh(geometry.NewUVSphere("enclosure", core.NewVec3(0, 0, 0), 4, sphereSegments, sphereRings, enclosure, true))

	return b.Build()
}
