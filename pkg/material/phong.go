package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

var localPole = mgl64.Vec3{0, 0, 1}

// phongLobe holds the parameters shared by the glossy and mixture models
type phongLobe struct {
	diffuse  Texture
	specular Texture
	exponent float64
	scale    float64 // keeps diffuse+specular reflectance below one
}

func newPhongLobe(diffuse, specular Texture, exponent float64) phongLobe {
	return phongLobe{
		diffuse:  diffuse,
		specular: specular,
		exponent: math.Max(0, exponent),
		scale:    energyScale(diffuse, specular),
	}
}

// energyScale returns 0.99/max when the largest channel of the summed
// reflectance maxima exceeds one, otherwise 1
func energyScale(diffuse, specular Texture) float64 {
	actualMax := diffuse.Max().Add(specular.Max()).MaxComponent()
	if actualMax > 1 {
		return 0.99 / actualMax
	}
	return 1
}

// reflectLocal mirrors a local direction about the shading normal
func reflectLocal(d core.Vec3) core.Vec3 {
	return core.NewVec3(-d.X, -d.Y, d.Z)
}

// cosAlpha is cos^n of the angle between the mirrored wi and wo
func (l phongLobe) cosAlpha(wi, wo core.Vec3) float64 {
	c := reflectLocal(wi).Normalize().Dot(wo.Normalize())
	if c <= 0 {
		return 0
	}
	return math.Pow(math.Min(c, 1), l.exponent)
}

// specularTerm is the unscaled normalized Phong lobe value, without the cosine
func (l phongLobe) specularTerm(si *SurfaceInteraction, wi core.Vec3) core.Vec3 {
	norm := (l.exponent + 2) / (2 * math.Pi)
	return l.specular.Evaluate(si.UV, si.P).Multiply(norm * l.cosAlpha(wi, si.Wo))
}

// diffuseTerm is the unscaled Lambertian value, without the cosine
func (l phongLobe) diffuseTerm(si *SurfaceInteraction) core.Vec3 {
	return l.diffuse.Evaluate(si.UV, si.P).Multiply(1 / math.Pi)
}

// lobeRotation is the minimal rotation taking +z onto the mirror direction of wo
func lobeRotation(wo core.Vec3) mgl64.Quat {
	r := reflectLocal(wo)
	return mgl64.QuatBetweenVectors(localPole, mgl64.Vec3{r.X, r.Y, r.Z})
}

// sample draws a lobe direction around the mirror direction of wo
func (l phongLobe) sample(wo core.Vec3, u core.Vec2) core.Vec3 {
	d := core.SamplePhongLobe(u, l.exponent)
	w := lobeRotation(wo).Rotate(mgl64.Vec3{d.X, d.Y, d.Z})
	return core.NewVec3(w[0], w[1], w[2]).Normalize()
}

// pdf rotates wi back into the lobe frame and evaluates the lobe density
func (l phongLobe) pdf(wo, wi core.Vec3) float64 {
	d := lobeRotation(wo).Conjugate().Rotate(mgl64.Vec3{wi.X, wi.Y, wi.Z})
	return math.Max(0, core.PhongLobePDF(core.NewVec3(d[0], d[1], d[2]).Normalize(), l.exponent))
}
