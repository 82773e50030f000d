package integrator

import "errors"

var (
	ErrUnknownKind    = errors.New("unknown integrator")
	ErrInvalidRRProb  = errors.New("russian roulette probability must be in (0, 1]")
	ErrInvalidDepth   = errors.New("invalid path depth")
	ErrInvalidSamples = errors.New("invalid sample count")
	ErrNoEmitters     = errors.New("integrator needs at least one emitter")
)
