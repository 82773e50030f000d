package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Glossy is the modified Phong model: a normalized specular lobe around the
// mirror direction of wo in the shading frame
type Glossy struct {
	emitter
	lobe phongLobe
}

// NewGlossy creates a glossy model. The diffuse reflectance only takes part
// in the energy-conservation scale.
func NewGlossy(diffuse, specular Texture, exponent float64, emission core.Vec3) *Glossy {
	return &Glossy{
		emitter: emitter{emission: emission},
		lobe:    newPhongLobe(diffuse, specular, exponent),
	}
}

// Kind returns KindGlossy
func (g *Glossy) Kind() Kind {
	return KindGlossy
}

// Scale returns the energy-conservation factor
func (g *Glossy) Scale() float64 {
	return g.lobe.scale
}

// Exponent returns the Phong exponent
func (g *Glossy) Exponent() float64 {
	return g.lobe.exponent
}

// Eval returns scale · specular · (n+2)/(2π) · cosAlpha · cos(θi)
func (g *Glossy) Eval(si *SurfaceInteraction, wi core.Vec3) core.Vec3 {
	if !si.FacesGeometrically(wi, si.Wo) {
		return core.Vec3{}
	}
	cosTheta := math.Max(0, core.LocalCosTheta(wi))
	return g.lobe.specularTerm(si, wi).Multiply(g.lobe.scale * cosTheta)
}

// Sample draws a direction from the Phong lobe around the mirror direction
func (g *Glossy) Sample(si *SurfaceInteraction, u core.Vec2) BSDFSample {
	wi := g.lobe.sample(si.Wo, u)
	pdf := g.PDF(si, wi)
	return BSDFSample{Wi: wi, Value: weightedValue(g.Eval(si, wi), pdf), PDF: pdf}
}

// PDF returns the Phong lobe density of wi
func (g *Glossy) PDF(si *SurfaceInteraction, wi core.Vec3) float64 {
	return g.lobe.pdf(si.Wo, wi)
}
