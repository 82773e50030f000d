package integrator

import (
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/df07/go-light-transport/pkg/material"
)

var logger = log.New("integrator")

// Integrator estimates the radiance arriving along a camera ray. An
// integrator is shared by all render workers; per-ray state lives in locals
// and the sampler.
type Integrator interface {
	Render(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Scene is the read-only view of the world the integrators trace against
type Scene interface {
	// Intersect returns the nearest hit along the ray
	Intersect(ray core.Ray) (*material.SurfaceInteraction, bool)
	// BSDF returns the reflectance model of a material, nil when it has none
	BSDF(materialID int) material.BSDF
	// Emission returns the radiance leaving the hit towards the ray origin
	Emission(si *material.SurfaceInteraction) core.Vec3
	// Emitters returns the emissive shapes
	Emitters() *lights.Registry
	// Bounds returns the center and radius of the enclosing sphere
	Bounds() (core.Vec3, float64)
}

// New validates the configuration and creates the integrator it selects
func New(cfg Config, scene Scene) (Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.needsEmitters() && scene.Emitters().Count() == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Kind, ErrNoEmitters)
	}

	logger.Infof("using %s", cfg)
	logger.Debugf("emitters: %s", scene.Emitters())

	switch cfg.Kind {
	case KindNormal:
		return NewNormalIntegrator(scene), nil
	case KindAmbientOcclusion:
		return NewAmbientOcclusionIntegrator(scene, cfg.AOSamples), nil
	case KindRayOrigin:
		return NewReflectionOcclusionIntegrator(scene, cfg.ROSamples, cfg.ROExponent), nil
	case KindSimple:
		return NewSimpleIntegrator(scene), nil
	case KindDirect:
		return NewDirectIntegrator(scene, cfg.EmitterSamples, cfg.BSDFSamples), nil
	default:
		return NewPathTracingIntegrator(scene, cfg), nil
	}
}
