package integrator

import (
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/scene"
)

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

func newSphereLightScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.NewSphereLightScene()
	if err != nil {
		t.Fatalf("Failed to build sphere light scene: %v", err)
	}
	return sc
}

func newFurnaceScene(t *testing.T, albedo, radiance float64) *scene.Scene {
	t.Helper()
	sc, err := scene.NewFurnaceScene(albedo, radiance)
	if err != nil {
		t.Fatalf("Failed to build furnace scene: %v", err)
	}
	return sc
}

// newClosedRoomScene builds an inward facing, flat shaded sphere of the given
// albedo whose polar cap above 30 degrees emits unit radiance. It returns the
// scene and the fraction of the room's area covered by the cap.
func newClosedRoomScene(t *testing.T, albedo float64) (*scene.Scene, float64) {
	t.Helper()
	const radius = 2.0

	b := scene.NewBuilder("closed-room")
	wallMat := b.AddMaterial(material.Record{Name: "wall", Illum: material.IllumDiffuse, Kd: core.Splat(albedo)})
	capMat := b.AddMaterial(material.Record{Name: "cap", Illum: material.IllumDiffuse, Ke: core.Splat(1)})

	room := geometry.NewUVSphere("room", core.Vec3{}, radius, 48, 24, wallMat, true)
	room.ClearNormals()

	capMesh := geometry.NewTriangleMesh("cap")
	capMesh.Vertices, capMesh.UVs = room.Vertices, room.UVs
	wallMesh := geometry.NewTriangleMesh("walls")
	wallMesh.Vertices, wallMesh.UVs = room.Vertices, room.UVs

	threshold := radius * math.Cos(math.Pi*4/24)
	for _, f := range room.Faces {
		v0, v1, v2 := room.Vertices[f.V[0]], room.Vertices[f.V[1]], room.Vertices[f.V[2]]
		if (v0.Z+v1.Z+v2.Z)/3 > threshold {
			f.MaterialID = capMat
			capMesh.Faces = append(capMesh.Faces, f)
		} else {
			wallMesh.Faces = append(wallMesh.Faces, f)
		}
	}
	b.AddMesh(capMesh)
	b.AddMesh(wallMesh)

	sc, err := b.Build()
	if err != nil {
		t.Fatalf("Failed to build closed room: %v", err)
	}
	return sc, capMesh.Area() / (capMesh.Area() + wallMesh.Area())
}

// estimate renders the ray n times from one seeded stream and returns the
// mean and standard error of the red channel
func estimate(integ Integrator, ray core.Ray, n int, seed int64) (float64, float64) {
	sampler := core.NewSeededSampler(seed)
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := integ.Render(ray, sampler).X
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := math.Max(0, sumSq/float64(n)-mean*mean)
	return mean, math.Sqrt(variance / float64(n))
}

// litSideRay returns a ray hitting the diffuse sphere of the sphere light scene
// at the point closest to the emitter, arriving at an angle from the side so
// that it passes the emitter
func litSideRay() core.Ray {
	n := core.NewVec3(1.5, 2.5, 2).Normalize()
	side := n.Cross(core.NewVec3(0, 0, 1)).Normalize()
	origin := n.Add(n.Multiply(1.2)).Add(side.Multiply(1.6))
	return core.NewRay(origin, n.Subtract(origin))
}

// tessellationError bounds the relative difference between the analytic
// sphere light and its triangle mesh
const tessellationError = 0.01

// sphereLightRadiance is the radiance reflected by a diffuse point facing the
// center of a spherical emitter of radius r at distance d: ρ·L·(r/d)²
func sphereLightRadiance(albedo, radiance, r, d float64) float64 {
	return albedo * radiance * (r / d) * (r / d)
}
