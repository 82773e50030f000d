package loaders

import "errors"

var (
	// ErrUnsupportedSyntax is returned for statements with the wrong number
	// or kind of arguments
	ErrUnsupportedSyntax = errors.New("unsupported syntax")

	// ErrUndefinedMaterial is returned by usemtl for names no library defined
	ErrUndefinedMaterial = errors.New("undefined material")

	// ErrIndexOutOfRange is returned for face indices outside the coordinate lists
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ErrInvalidConfig is returned for render configuration values of the wrong shape
var ErrInvalidConfig = errors.New("invalid render configuration")
