package integrator

import "github.com/df07/go-light-transport/pkg/core"

// NormalIntegrator shows the absolute shading normal as a color
type NormalIntegrator struct {
	scene Scene
}

// NewNormalIntegrator creates a normal visualization integrator
func NewNormalIntegrator(scene Scene) *NormalIntegrator {
	return &NormalIntegrator{scene: scene}
}

// Render returns |n| at the first hit, black on a miss
func (ni *NormalIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := ni.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}
	return hit.FrameNs.N.Abs()
}
