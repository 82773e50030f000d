package integrator

import "github.com/df07/go-light-transport/pkg/core"

// DirectIntegrator renders emitters seen by the camera plus one bounce of
// light reflected from them
type DirectIntegrator struct {
	scene  Scene
	direct directLighting
}

// NewDirectIntegrator creates a direct lighting integrator drawing the given
// numbers of emitter and BSDF samples per hit
func NewDirectIntegrator(scene Scene, emitterSamples, bsdfSamples int) *DirectIntegrator {
	return &DirectIntegrator{scene: scene, direct: newDirectLighting(scene, emitterSamples, bsdfSamples)}
}

// Render estimates the radiance along a camera ray
func (di *DirectIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := di.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}
	return finite(di.scene.Emission(hit).Add(di.direct.Estimate(hit, sampler)))
}
