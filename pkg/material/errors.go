package material

import "errors"

var (
	// ErrUnmappedIllum is returned for illumination codes that are reserved
	// but not bound to a reflectance model. Surfaces using such a material
	// do not interact with light.
	ErrUnmappedIllum = errors.New("illumination model has no reflectance model")

	// ErrTexture is returned when a texture referenced by a material cannot be loaded
	ErrTexture = errors.New("cannot load texture")
)
