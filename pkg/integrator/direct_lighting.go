package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// shadowTolerance is the relative distance error accepted when a shadow ray
// reaches the sampled emitter
const shadowTolerance = 1e-3

// directLighting estimates the radiance reflected at a hit from light that
// arrives straight from the emitters. Emitter and BSDF samples are combined
// with the balance heuristic, both densities in solid angle measure.
type directLighting struct {
	scene          Scene
	emitterSamples int
	bsdfSamples    int
}

func newDirectLighting(scene Scene, emitterSamples, bsdfSamples int) directLighting {
	return directLighting{scene: scene, emitterSamples: emitterSamples, bsdfSamples: bsdfSamples}
}

// Estimate returns the direct lighting at si towards si.Wo
func (d directLighting) Estimate(si *material.SurfaceInteraction, sampler core.Sampler) core.Vec3 {
	bsdf := d.scene.BSDF(si.MaterialID)
	if bsdf == nil {
		return core.Vec3{}
	}

	result := core.Vec3{}
	if d.emitterSamples > 0 {
		sum := core.Vec3{}
		for i := 0; i < d.emitterSamples; i++ {
			sum = sum.Add(d.sampleEmitter(si, bsdf, sampler))
		}
		result = result.Add(sum.Multiply(1.0 / float64(d.emitterSamples)))
	}
	if d.bsdfSamples > 0 {
		sum := core.Vec3{}
		for i := 0; i < d.bsdfSamples; i++ {
			sum = sum.Add(d.sampleBSDF(si, bsdf, sampler))
		}
		result = result.Add(sum.Multiply(1.0 / float64(d.bsdfSamples)))
	}
	return result
}

// sampleEmitter picks an emitter, a point on it and traces a shadow ray
func (d directLighting) sampleEmitter(si *material.SurfaceInteraction, bsdf material.BSDF, sampler core.Sampler) core.Vec3 {
	emitters := d.scene.Emitters()
	id, selectionPDF := emitters.Select(sampler.Get1D())
	emitter := emitters.ByID(id)
	if emitter == nil {
		return core.Vec3{}
	}
	ps := emitters.SamplePosition(sampler, emitter)

	toLight := ps.Point.Subtract(si.P)
	dist2 := toLight.LengthSquared()
	if dist2 <= 0 {
		return core.Vec3{}
	}
	dist := math.Sqrt(dist2)
	dir := toLight.Divide(dist)

	// emitters only radiate from their front side
	cosLight := ps.Normal.Dot(dir.Negate())
	if cosLight <= 0 {
		return core.Vec3{}
	}

	wi := si.ToLocal(dir)
	f := bsdf.Eval(si, wi)
	if f.IsZero() {
		return core.Vec3{}
	}

	hit, ok := d.scene.Intersect(si.SpawnRayTo(ps.Point))
	if !ok || hit.ShapeID != emitter.ShapeID {
		return core.Vec3{}
	}
	if math.Abs(math.Sqrt(si.P.DistanceSquared(hit.P))-dist) > shadowTolerance*(1+dist) {
		return core.Vec3{}
	}
	emission := d.scene.Emission(hit)
	if emission.IsZero() {
		return core.Vec3{}
	}

	pdf := ps.PDF * selectionPDF * dist2 / cosLight
	if !validPDF(pdf) {
		return core.Vec3{}
	}
	weight := core.BalanceHeuristic(d.emitterSamples, pdf, d.bsdfSamples, bsdf.PDF(si, wi))
	return finite(f.MultiplyVec(emission).Multiply(weight / pdf))
}

// sampleBSDF follows a BSDF sample and keeps it when it lands on an emitter
func (d directLighting) sampleBSDF(si *material.SurfaceInteraction, bsdf material.BSDF, sampler core.Sampler) core.Vec3 {
	sample := bsdf.Sample(si, sampler.Get2D())
	if sample.IsZero() {
		return core.Vec3{}
	}

	hit, ok := d.scene.Intersect(si.SpawnRay(sample.Wi))
	if !ok {
		return core.Vec3{}
	}
	emission := d.scene.Emission(hit)
	if emission.IsZero() {
		return core.Vec3{}
	}

	emitters := d.scene.Emitters()
	id := emitters.IDByShapeID(hit.ShapeID)
	emitter := emitters.ByID(id)
	if emitter == nil {
		return core.Vec3{}
	}

	dir := si.ToWorld(sample.Wi)
	cosLight := hit.FrameNg.CosTheta(dir.Negate())
	if cosLight <= 0 {
		return core.Vec3{}
	}
	emitterPDF := emitter.PositionPDF() * emitters.SelectionPDF(id) * si.P.DistanceSquared(hit.P) / cosLight
	if !validPDF(emitterPDF) {
		emitterPDF = 0
	}

	weight := core.BalanceHeuristic(d.bsdfSamples, sample.PDF, d.emitterSamples, emitterPDF)
	return finite(sample.Value.MultiplyVec(emission).Multiply(weight))
}

func validPDF(pdf float64) bool {
	return pdf > 0 && !math.IsInf(pdf, 0)
}

// finite drops NaN and infinite contributions
func finite(v core.Vec3) core.Vec3 {
	if !v.IsFinite() {
		return core.Vec3{}
	}
	return v
}
