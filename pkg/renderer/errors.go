package renderer

import "errors"

var (
	ErrInterrupted   = errors.New("renderer: rendering was interrupted")
	ErrInvalidConfig = errors.New("renderer: invalid render configuration")
	ErrUnknownFormat = errors.New("renderer: unsupported image format")
)
