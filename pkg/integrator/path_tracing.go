package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// maxEmissiveSkips bounds how often an indirect bounce is re-sampled because
// it landed on an emitter whose light was already counted as direct lighting
const maxEmissiveSkips = 5

// PathTracingIntegrator implements unidirectional path tracing. In implicit
// mode paths only pick up light when a BSDF sample happens to hit an emitter.
// In explicit mode every vertex gathers direct lighting and the indirect
// bounces skip emitters so no light is counted twice.
type PathTracingIntegrator struct {
	scene  Scene
	config Config
	direct directLighting
}

// NewPathTracingIntegrator creates a path tracer. The configuration is
// expected to be valid.
func NewPathTracingIntegrator(scene Scene, config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		scene:  scene,
		config: config,
		direct: newDirectLighting(scene, config.EmitterSamples, config.BSDFSamples),
	}
}

// Render estimates the radiance along a camera ray
func (pt *PathTracingIntegrator) Render(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, ok := pt.scene.Intersect(ray)
	if !ok {
		return core.Vec3{}
	}

	if !pt.config.IsExplicit {
		return finite(pt.renderImplicit(hit, sampler))
	}

	l := core.Vec3{}
	if pt.config.MaxDepth != 0 {
		l = pt.direct.Estimate(hit, sampler)
	}
	return finite(l.Add(pt.indirect(hit, sampler)))
}

// renderImplicit walks BSDF samples until a path reaches an emitter
func (pt *PathTracingIntegrator) renderImplicit(hit *material.SurfaceInteraction, sampler core.Sampler) core.Vec3 {
	throughput := core.Splat(1)
	for depth := 0; ; depth++ {
		if emission := pt.scene.Emission(hit); !emission.IsZero() {
			return throughput.MultiplyVec(emission)
		}

		if !pt.continuePath(depth, &throughput, sampler) {
			return core.Vec3{}
		}

		bsdf := pt.scene.BSDF(hit.MaterialID)
		if bsdf == nil {
			return core.Vec3{}
		}
		sample := bsdf.Sample(hit, sampler.Get2D())
		if sample.IsZero() {
			return core.Vec3{}
		}
		throughput = throughput.MultiplyVec(sample.Value)

		next, ok := pt.scene.Intersect(hit.SpawnRay(sample.Wi))
		if !ok {
			return core.Vec3{}
		}
		hit = next
	}
}

// indirect accumulates the direct lighting of every vertex after the first
func (pt *PathTracingIntegrator) indirect(hit *material.SurfaceInteraction, sampler core.Sampler) core.Vec3 {
	// the camera sees the emitter itself
	if emission := pt.scene.Emission(hit); !emission.IsZero() {
		return emission
	}

	l := core.Vec3{}
	throughput := core.Splat(1)
	for depth := 0; ; depth++ {
		if !pt.continuePath(depth+1, &throughput, sampler) {
			return l
		}

		bsdf := pt.scene.BSDF(hit.MaterialID)
		if bsdf == nil {
			return l
		}
		next, sample, ok := pt.nextNonEmissive(hit, bsdf, sampler)
		if !ok {
			return l
		}

		throughput = throughput.MultiplyVec(sample.Value)
		if throughput.IsZero() {
			return l
		}
		l = l.Add(throughput.MultiplyVec(pt.direct.Estimate(next, sampler)))
		hit = next
	}
}

// nextNonEmissive samples the BSDF until the bounce lands on a surface that
// does not emit towards it. Emitter hits are retried at most
// maxEmissiveSkips times before the path gives up.
func (pt *PathTracingIntegrator) nextNonEmissive(hit *material.SurfaceInteraction, bsdf material.BSDF, sampler core.Sampler) (*material.SurfaceInteraction, material.BSDFSample, bool) {
	for attempt := 0; attempt < maxEmissiveSkips; attempt++ {
		sample := bsdf.Sample(hit, sampler.Get2D())
		if sample.IsZero() {
			return nil, sample, false
		}
		next, ok := pt.scene.Intersect(hit.SpawnRay(sample.Wi))
		if !ok {
			return nil, sample, false
		}
		if pt.scene.Emission(next).IsZero() {
			return next, sample, true
		}
	}
	return nil, material.BSDFSample{}, false
}

// continuePath decides whether a path may take bounce number depth+1. A
// bounded path stops at MaxDepth. An unbounded path plays russian roulette
// from RRDepth on and compensates the survivors' throughput.
func (pt *PathTracingIntegrator) continuePath(depth int, throughput *core.Vec3, sampler core.Sampler) bool {
	if pt.config.MaxDepth >= 0 {
		return depth < pt.config.MaxDepth
	}
	if depth < pt.config.RRDepth {
		return true
	}
	if sampler.Get1D() > pt.config.RRProb {
		return false
	}
	*throughput = throughput.Multiply(1.0 / pt.config.RRProb)
	return true
}
