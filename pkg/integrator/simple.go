package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// SimpleIntegrator treats the first emitter as a point light at its center
// with intensity equal to its radiance. Only that light is rendered, with
// hard shadows and no indirect light.
type SimpleIntegrator struct {
	scene     Scene
	position  core.Vec3
	intensity core.Vec3
	shapeID   int
}

// NewSimpleIntegrator creates a point light integrator. The scene must have
// at least one emitter.
func NewSimpleIntegrator(scene Scene) *SimpleIntegrator {
	light := scene.Emitters().ByID(0)
	return &SimpleIntegrator{
		scene:     scene,
		position:  light.Center(),
		intensity: light.Radiance,
		shapeID:   light.ShapeID,
	}
}

// Render estimates the radiance along a camera ray
func (s *SimpleIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := s.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}
	bsdf := s.scene.BSDF(hit.MaterialID)
	if bsdf == nil {
		return core.Vec3{}
	}

	toLight := s.position.Subtract(hit.P)
	dist2 := toLight.LengthSquared()
	if dist2 <= 0 {
		return core.Vec3{}
	}
	dist := math.Sqrt(dist2)

	// the emitter's own surface surrounds the point light and does not occlude it
	if blocker, blocked := s.scene.Intersect(hit.SpawnRayTo(s.position)); blocked &&
		blocker.ShapeID != s.shapeID && blocker.T < dist {
		return core.Vec3{}
	}

	f := bsdf.Eval(hit, hit.ToLocal(toLight.Divide(dist)))
	return finite(f.MultiplyVec(s.intensity).Multiply(1.0 / dist2))
}
