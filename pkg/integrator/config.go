package integrator

import (
	"fmt"
	"strings"
)

// Kind selects the light transport algorithm
type Kind int

const (
	KindNormal Kind = iota
	KindAmbientOcclusion
	KindRayOrigin
	KindSimple
	KindDirect
	KindPath
)

var kindNames = map[Kind]string{
	KindNormal:           "normal",
	KindAmbientOcclusion: "ambient-occlusion",
	KindRayOrigin:        "ray-origin",
	KindSimple:           "simple",
	KindDirect:           "direct",
	KindPath:             "path",
}

// ParseKind converts a configuration name into a Kind. The short forms
// "ao" and "ro" are accepted as well.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "normals":
		return KindNormal, nil
	case "ambient-occlusion", "ao":
		return KindAmbientOcclusion, nil
	case "ray-origin", "ro":
		return KindRayOrigin, nil
	case "simple":
		return KindSimple, nil
	case "direct":
		return KindDirect, nil
	case "path", "":
		return KindPath, nil
	default:
		return KindPath, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// String returns the configuration name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Config holds the parameters shared by all integrators. Fields that do not
// apply to the selected kind are ignored.
type Config struct {
	Kind       Kind
	IsExplicit bool // path: next event estimation instead of pure BSDF sampling

	MaxDepth int     // path: bounce limit, -1 for unbounded with russian roulette
	RRDepth  int     // path: bounces before russian roulette starts
	RRProb   float64 // path: survival probability of a roulette draw

	EmitterSamples int // direct lighting samples drawn on emitters
	BSDFSamples    int // direct lighting samples drawn from the BSDF

	AOSamples  int     // ambient occlusion rays per hit
	ROSamples  int     // reflection occlusion rays per hit
	ROExponent float64 // Phong exponent of the reflection occlusion lobe
}

// DefaultConfig returns an explicit, unbounded path tracer
func DefaultConfig() Config {
	return Config{
		Kind:           KindPath,
		IsExplicit:     true,
		MaxDepth:       -1,
		RRDepth:        5,
		RRProb:         0.95,
		EmitterSamples: 1,
		BSDFSamples:    1,
		AOSamples:      1,
		ROSamples:      1,
		ROExponent:     30,
	}
}

// Validate checks the configuration of the selected kind
func (c Config) Validate() error {
	if _, ok := kindNames[c.Kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, c.Kind)
	}

	switch c.Kind {
	case KindPath:
		if c.MaxDepth < -1 {
			return fmt.Errorf("%w: max depth %d", ErrInvalidDepth, c.MaxDepth)
		}
		if c.MaxDepth == -1 {
			if !(c.RRProb > 0 && c.RRProb <= 1) {
				return fmt.Errorf("%w: got %v", ErrInvalidRRProb, c.RRProb)
			}
			if c.RRDepth < 0 {
				return fmt.Errorf("%w: roulette depth %d", ErrInvalidDepth, c.RRDepth)
			}
		}
		if c.IsExplicit {
			return c.validateDirectSamples()
		}
	case KindDirect:
		return c.validateDirectSamples()
	case KindAmbientOcclusion:
		if c.AOSamples <= 0 {
			return fmt.Errorf("%w: %d ambient occlusion samples", ErrInvalidSamples, c.AOSamples)
		}
	case KindRayOrigin:
		if c.ROSamples <= 0 {
			return fmt.Errorf("%w: %d reflection occlusion samples", ErrInvalidSamples, c.ROSamples)
		}
		if c.ROExponent < 0 {
			return fmt.Errorf("%w: negative lobe exponent %v", ErrInvalidSamples, c.ROExponent)
		}
	}
	return nil
}

func (c Config) validateDirectSamples() error {
	if c.EmitterSamples < 0 || c.BSDFSamples < 0 || c.EmitterSamples+c.BSDFSamples == 0 {
		return fmt.Errorf("%w: %d emitter and %d bsdf samples", ErrInvalidSamples, c.EmitterSamples, c.BSDFSamples)
	}
	return nil
}

// needsEmitters reports whether the configuration samples emitters directly
func (c Config) needsEmitters() bool {
	switch c.Kind {
	case KindSimple, KindDirect:
		return true
	case KindPath:
		return c.IsExplicit
	}
	return false
}

// String summarizes the configuration for logs
func (c Config) String() string {
	switch c.Kind {
	case KindPath:
		mode := "implicit"
		if c.IsExplicit {
			mode = "explicit"
		}
		if c.MaxDepth < 0 {
			return fmt.Sprintf("path (%s, unbounded, roulette after %d at %.2f)", mode, c.RRDepth, c.RRProb)
		}
		return fmt.Sprintf("path (%s, max depth %d)", mode, c.MaxDepth)
	case KindDirect:
		return fmt.Sprintf("direct (%d emitter, %d bsdf samples)", c.EmitterSamples, c.BSDFSamples)
	case KindAmbientOcclusion:
		return fmt.Sprintf("ambient-occlusion (%d samples)", c.AOSamples)
	case KindRayOrigin:
		return fmt.Sprintf("ray-origin (%d samples, exponent %v)", c.ROSamples, c.ROExponent)
	}
	return c.Kind.String()
}
