package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// AmbientOcclusionIntegrator estimates the fraction of the cosine weighted
// hemisphere that is unoccluded within half the scene radius
type AmbientOcclusionIntegrator struct {
	scene       Scene
	samples     int
	maxDistance float64
}

// NewAmbientOcclusionIntegrator creates an ambient occlusion integrator
func NewAmbientOcclusionIntegrator(scene Scene, samples int) *AmbientOcclusionIntegrator {
	_, radius := scene.Bounds()
	return &AmbientOcclusionIntegrator{scene: scene, samples: samples, maxDistance: radius / 2}
}

// Render returns the unoccluded fraction at the first hit as a gray value.
// Directions are drawn proportional to cos/π, so every unoccluded sample
// contributes exactly one.
func (ao *AmbientOcclusionIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := ao.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}

	visible := 0
	for i := 0; i < ao.samples; i++ {
		wi := core.SampleCosineHemisphere(sampler.Get2D())
		if unoccluded(ao.scene, hit, wi, ao.maxDistance) {
			visible++
		}
	}
	return core.Splat(float64(visible) / float64(ao.samples))
}

// ReflectionOcclusionIntegrator estimates how much of a Phong lobe around
// the mirror direction is unoccluded within half the scene radius
type ReflectionOcclusionIntegrator struct {
	scene       Scene
	samples     int
	exponent    float64
	maxDistance float64
}

// NewReflectionOcclusionIntegrator creates a reflection occlusion integrator
func NewReflectionOcclusionIntegrator(scene Scene, samples int, exponent float64) *ReflectionOcclusionIntegrator {
	_, radius := scene.Bounds()
	return &ReflectionOcclusionIntegrator{scene: scene, samples: samples, exponent: exponent, maxDistance: radius / 2}
}

// Render averages the lobe weighted visibility V·(n+2)/(2π)·cos^n(α)·cos(θ)
// over lobe samples of density (n+1)/(2π)·cos^n(α)
func (ro *ReflectionOcclusionIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := ro.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}

	mirror := core.NewVec3(-hit.Wo.X, -hit.Wo.Y, hit.Wo.Z)
	lobe := core.NewFrame(mirror)

	sum := 0.0
	for i := 0; i < ro.samples; i++ {
		wi := lobe.ToWorld(core.SamplePhongLobe(sampler.Get2D(), ro.exponent))
		if wi.Z <= 0 || !unoccluded(ro.scene, hit, wi, ro.maxDistance) {
			continue
		}
		// the lobe terms cancel up to the normalization ratio
		sum += (ro.exponent + 2) / (ro.exponent + 1) * wi.Z
	}
	return core.Splat(sum / float64(ro.samples))
}

// unoccluded reports whether nothing is hit within maxDistance along the
// local direction wi
func unoccluded(scene Scene, hit *material.SurfaceInteraction, wi core.Vec3, maxDistance float64) bool {
	if hit.FrameNg.CosTheta(hit.ToWorld(wi)) <= 0 {
		return false
	}
	blocker, blocked := scene.Intersect(hit.SpawnRay(wi))
	return !blocked || blocker.T > maxDistance
}
