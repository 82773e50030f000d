package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Kind tags the closed set of reflectance models
type Kind int

const (
	KindDiffuse Kind = iota
	KindGlossy
	KindMixture
)

// String returns the model name used in logs and scene summaries
func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindGlossy:
		return "glossy"
	case KindMixture:
		return "mixture"
	default:
		return "unknown"
	}
}

// BSDF is a surface scattering model. Directions are local to the
// interaction's shading frame and the interaction itself is never modified.
type BSDF interface {
	// Kind identifies the concrete model
	Kind() Kind

	// Eval returns the scattering term times the cosine of wi for the pair
	// (wi, si.Wo). It is zero when the two directions lie on opposite sides
	// of the geometric normal.
	Eval(si *SurfaceInteraction, wi core.Vec3) core.Vec3

	// Sample draws an incoming direction and returns it with Eval/PDF and the density
	Sample(si *SurfaceInteraction, u core.Vec2) BSDFSample

	// PDF returns the solid angle density with which Sample would produce wi
	PDF(si *SurfaceInteraction, wi core.Vec3) float64

	// Emission returns the radiance emitted by surfaces using this model
	Emission() core.Vec3

	// IsEmissive reports whether any emission channel is positive
	IsEmissive() bool
}

// BSDFSample is the outcome of BSDF.Sample
type BSDFSample struct {
	Wi    core.Vec3 // sampled incoming direction, local
	Value core.Vec3 // Eval(wi) / PDF, zero when the pdf is unusable
	PDF   float64
}

// IsZero reports whether the sample carries no energy
func (s BSDFSample) IsZero() bool {
	return s.PDF <= 0 || s.Value.IsZero()
}

// weightedValue divides an evaluated contribution by its density, suppressing
// zero, negative and non-finite densities
func weightedValue(value core.Vec3, pdf float64) core.Vec3 {
	if !(pdf > 0) || math.IsInf(pdf, 0) {
		return core.Vec3{}
	}
	out := value.Multiply(1.0 / pdf)
	if !out.IsFinite() {
		return core.Vec3{}
	}
	return out
}

// emitter is embedded by every model to carry the material's emitted radiance
type emitter struct {
	emission core.Vec3
}

// Emission returns the emitted radiance
func (e emitter) Emission() core.Vec3 {
	return e.emission
}

// IsEmissive reports whether any emission channel is positive
func (e emitter) IsEmissive() bool {
	return e.emission.X > 0 || e.emission.Y > 0 || e.emission.Z > 0
}
