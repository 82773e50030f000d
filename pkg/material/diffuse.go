package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) surface
type Diffuse struct {
	emitter
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewDiffuse creates a diffuse model with a solid albedo
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: NewConstantTexture(albedo)}
}

// NewTexturedDiffuse creates a diffuse model with a textured albedo and emission
func NewTexturedDiffuse(albedo Texture, emission core.Vec3) *Diffuse {
	return &Diffuse{emitter: emitter{emission: emission}, Albedo: albedo}
}

// Kind returns KindDiffuse
func (d *Diffuse) Kind() Kind {
	return KindDiffuse
}

// Eval returns albedo/π · cos(θi)
func (d *Diffuse) Eval(si *SurfaceInteraction, wi core.Vec3) core.Vec3 {
	if !si.FacesGeometrically(wi, si.Wo) {
		return core.Vec3{}
	}
	cosTheta := math.Max(0, core.LocalCosTheta(wi))
	return d.Albedo.Evaluate(si.UV, si.P).Multiply(cosTheta / math.Pi)
}

// Sample draws a cosine-weighted direction
func (d *Diffuse) Sample(si *SurfaceInteraction, u core.Vec2) BSDFSample {
	wi := core.SampleCosineHemisphere(u)
	pdf := d.PDF(si, wi)
	return BSDFSample{Wi: wi, Value: weightedValue(d.Eval(si, wi), pdf), PDF: pdf}
}

// PDF returns cos(θi)/π
func (d *Diffuse) PDF(si *SurfaceInteraction, wi core.Vec3) float64 {
	return core.CosineHemispherePDF(wi)
}
