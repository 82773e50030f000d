package material

import (
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
)

// Illumination model codes with a dedicated reflectance model. Every other
// code except the reserved ones builds a Glossy model.
const (
	IllumDiffuse = 7
	IllumMixture = 8
)

// IsReservedIllum reports whether an illumination code is reserved without a
// reflectance model. 5 and 6 are the ray-traced Fresnel reflection and
// refraction models of the MTL format.
func IsReservedIllum(code int) bool {
	return code == 5 || code == 6
}

// Record is a material description as found in a material library
type Record struct {
	Name  string
	Illum int
	Kd    core.Vec3 // diffuse reflectance
	Ks    core.Vec3 // specular reflectance
	Ke    core.Vec3 // emitted radiance
	Ns    float64   // Phong exponent
	MapKd string    // diffuse texture path, overrides Kd
	MapKs string    // specular texture path, overrides Ks
}

// FromRecord builds the reflectance model for a material record. Reserved
// illumination codes return ErrUnmappedIllum and a nil model.
func FromRecord(rec Record, textures TextureLoader) (BSDF, error) {
	if IsReservedIllum(rec.Illum) {
		return nil, fmt.Errorf("material %q illum %d: %w", rec.Name, rec.Illum, ErrUnmappedIllum)
	}

	diffuse, err := recordTexture(rec.MapKd, rec.Kd, textures)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", rec.Name, err)
	}
	specular, err := recordTexture(rec.MapKs, rec.Ks, textures)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", rec.Name, err)
	}

	switch rec.Illum {
	case IllumDiffuse:
		return NewTexturedDiffuse(diffuse, rec.Ke), nil
	case IllumMixture:
		return NewMixture(diffuse, specular, rec.Ns, rec.Ke), nil
	default:
		return NewGlossy(diffuse, specular, rec.Ns, rec.Ke), nil
	}
}

func recordTexture(path string, color core.Vec3, textures TextureLoader) (Texture, error) {
	if path == "" {
		return NewConstantTexture(color), nil
	}
	if textures == nil {
		return nil, fmt.Errorf("%w %q: no texture loader", ErrTexture, path)
	}
	tex, err := textures(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrTexture, path, err)
	}
	return tex, nil
}
