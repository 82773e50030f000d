package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Mixture combines a diffuse and a glossy lobe. Sampling picks a lobe with
// probability given by the luminance of each reflectance, and the returned
// weight always uses the combined Eval and PDF.
type Mixture struct {
	emitter
	lobe           phongLobe
	specularWeight float64
}

// NewMixture creates a diffuse plus glossy model
func NewMixture(diffuse, specular Texture, exponent float64, emission core.Vec3) *Mixture {
	lobe := newPhongLobe(diffuse, specular, exponent)
	return &Mixture{
		emitter:        emitter{emission: emission},
		lobe:           lobe,
		specularWeight: specularSamplingWeight(diffuse, specular, lobe.scale),
	}
}

// specularSamplingWeight is the share of the glossy lobe in the scaled average
// luminance; zero when both reflectances are black
func specularSamplingWeight(diffuse, specular Texture, scale float64) float64 {
	dAvg := math.Max(0, diffuse.Average().Multiply(scale).Luminance709())
	sAvg := math.Max(0, specular.Average().Multiply(scale).Luminance709())
	if dAvg+sAvg <= 0 {
		return 0
	}
	return sAvg / (dAvg + sAvg)
}

// Kind returns KindMixture
func (m *Mixture) Kind() Kind {
	return KindMixture
}

// Scale returns the energy-conservation factor
func (m *Mixture) Scale() float64 {
	return m.lobe.scale
}

// SpecularSamplingWeight returns the probability of sampling the glossy lobe
func (m *Mixture) SpecularSamplingWeight() float64 {
	return m.specularWeight
}

// Eval returns scale · (diffuse/π + specular · (n+2)/(2π) · cosAlpha) · cos(θi)
func (m *Mixture) Eval(si *SurfaceInteraction, wi core.Vec3) core.Vec3 {
	if !si.FacesGeometrically(wi, si.Wo) {
		return core.Vec3{}
	}
	cosTheta := math.Max(0, core.LocalCosTheta(wi))
	value := m.lobe.diffuseTerm(si).Add(m.lobe.specularTerm(si, wi))
	return value.Multiply(m.lobe.scale * cosTheta)
}

// Sample selects a lobe with u.X and reuses the remainder of u.X for that lobe
func (m *Mixture) Sample(si *SurfaceInteraction, u core.Vec2) BSDFSample {
	w := m.specularWeight

	var wi core.Vec3
	if u.X < w {
		wi = m.lobe.sample(si.Wo, core.NewVec2(u.X/w, u.Y))
	} else {
		wi = core.SampleCosineHemisphere(core.NewVec2((u.X-w)/(1-w), u.Y))
	}

	pdf := m.PDF(si, wi)
	return BSDFSample{Wi: wi, Value: weightedValue(m.Eval(si, wi), pdf), PDF: pdf}
}

// PDF returns w·phong + (1-w)·cosine
func (m *Mixture) PDF(si *SurfaceInteraction, wi core.Vec3) float64 {
	w := m.specularWeight
	phong := 0.0
	if w > 0 {
		phong = m.lobe.pdf(si.Wo, wi)
	}
	return w*phong + (1-w)*core.CosineHemispherePDF(wi)
}
