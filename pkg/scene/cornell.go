package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// NewCornellScene creates a classic Cornell box with an area light in the
// ceiling, a checkered floor and two blocks
func NewCornellScene() (*Scene, error) {
	b := NewBuilder("cornell-box")
	b.SetCamera(renderer.CameraConfig{
		Eye:  core.NewVec3(278, 278, -800), // outside the open side of the box
		At:   core.NewVec3(278, 278, 0),
		Up:   core.NewVec3(0, 1, 0),
		VFov: 40,
	})

	b.AddTexture("checker", material.NewCheckerboardTexture(512, 512, 32,
		core.NewVec3(0.73, 0.73, 0.73), core.NewVec3(0.4, 0.4, 0.4)))

	white := b.AddMaterial(material.Record{Name: "white", Illum: material.IllumDiffuse, Kd: core.NewVec3(0.73, 0.73, 0.73)})
	red := b.AddMaterial(material.Record{Name: "red", Illum: material.IllumDiffuse, Kd: core.NewVec3(0.65, 0.05, 0.05)})
	green := b.AddMaterial(material.Record{Name: "green", Illum: material.IllumDiffuse, Kd: core.NewVec3(0.12, 0.45, 0.15)})
	floor := b.AddMaterial(material.Record{Name: "floor", Illum: material.IllumDiffuse, MapKd: "checker"})
	light := b.AddMaterial(material.Record{
		Name:  "light",
		Illum: material.IllumDiffuse,
		Kd:    core.NewVec3(0.78, 0.78, 0.78),
		Ke:    core.NewVec3(15, 15, 15),
	})
	glossy := b.AddMaterial(material.Record{
		Name:  "glossy",
		Illum: material.IllumMixture,
		Kd:    core.NewVec3(0.4, 0.4, 0.45),
		Ks:    core.NewVec3(0.5, 0.5, 0.5),
		Ns:    60,
	})

	// Cornell box dimensions (standard 555x555x555 units). Every wall faces
	// the inside of the box; the side towards the camera is open.
	boxSize := 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)

	b.AddMesh(geometry.NewQuadMesh("floor", core.NewVec3(0, 0, 0), z, x, floor))
	b.AddMesh(geometry.NewQuadMesh("ceiling", core.NewVec3(0, boxSize, 0), x, z, white))
	b.AddMesh(geometry.NewQuadMesh("back", core.NewVec3(0, 0, boxSize), y, x, white))
	b.AddMesh(geometry.NewQuadMesh("left", core.NewVec3(0, 0, 0), y, z, red))
	b.AddMesh(geometry.NewQuadMesh("right", core.NewVec3(boxSize, 0, 0), z, y, green))

	// Ceiling light (smaller quad slightly below the ceiling, facing down)
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	b.AddMesh(geometry.NewQuadMesh("light",
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		light))

	short := geometry.NewBoxMesh("short-block", core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short.Transform(mgl64.Translate3D(130, 0, 65).Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(-18))))
	b.AddMesh(short)

	tall := geometry.NewBoxMesh("tall-block", core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), glossy)
	tall.Transform(mgl64.Translate3D(265, 0, 295).Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(15))))
	b.AddMesh(tall)

	return b.Build()
}
