package lights

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-light-transport/pkg/core"
)

// ErrUnknownSelection is returned when parsing an unsupported selection name
var ErrUnknownSelection = errors.New("unknown emitter selection")

// Selection decides how an emitter is chosen for direct lighting
type Selection int

const (
	// SelectUniform picks every emitter with probability 1/n
	SelectUniform Selection = iota
	// SelectPower picks emitters in proportion to their emitted power
	SelectPower
)

// ParseSelection converts a configuration name into a Selection
func ParseSelection(name string) (Selection, error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return SelectUniform, nil
	case "power":
		return SelectPower, nil
	default:
		return SelectUniform, fmt.Errorf("%w: %q", ErrUnknownSelection, name)
	}
}

// String returns the configuration name of the selection
func (s Selection) String() string {
	if s == SelectPower {
		return "power"
	}
	return "uniform"
}

// Registry holds the emitters of a scene. It is filled while the scene is
// built and read-only during rendering.
type Registry struct {
	emitters  []*Emitter
	byShape   map[int]int
	selection Selection
	power     *core.Distribution1D
}

// NewRegistry creates an empty registry with uniform emitter selection
func NewRegistry() *Registry {
	return NewRegistryWithSelection(SelectUniform)
}

// NewRegistryWithSelection creates an empty registry using the given selection
func NewRegistryWithSelection(selection Selection) *Registry {
	return &Registry{byShape: make(map[int]int), selection: selection}
}

// Add registers an emitter and returns its id
func (r *Registry) Add(e *Emitter) int {
	id := len(r.emitters)
	r.emitters = append(r.emitters, e)
	r.byShape[e.ShapeID] = id

	if r.selection == SelectPower {
		r.power = core.NewDistribution1D()
		for _, emitter := range r.emitters {
			r.power.Add(emitter.Power())
		}
		r.power.Normalize()
	}
	return id
}

// Count returns the number of emitters
func (r *Registry) Count() int {
	return len(r.emitters)
}

// Selection returns the emitter selection strategy
func (r *Registry) Selection() Selection {
	return r.selection
}

// Select chooses an emitter and returns its id with the discrete selection
// probability. It returns (-1, 0) when there are no emitters.
func (r *Registry) Select(u float64) (int, float64) {
	n := len(r.emitters)
	if n == 0 {
		return -1, 0
	}
	if r.selection == SelectPower {
		id := r.power.Sample(u)
		return id, r.power.PDF(id)
	}
	id := min(int(u*float64(n)), n-1)
	return id, 1.0 / float64(n)
}

// SelectionPDF returns the probability that Select picks emitter id
func (r *Registry) SelectionPDF(id int) float64 {
	if id < 0 || id >= len(r.emitters) {
		return 0
	}
	if r.selection == SelectPower {
		return r.power.PDF(id)
	}
	return 1.0 / float64(len(r.emitters))
}

// ByID returns the emitter with the given id, or nil
func (r *Registry) ByID(id int) *Emitter {
	if id < 0 || id >= len(r.emitters) {
		return nil
	}
	return r.emitters[id]
}

// IDByShapeID returns the emitter id of a shape, or -1 when it does not emit
func (r *Registry) IDByShapeID(shapeID int) int {
	if id, ok := r.byShape[shapeID]; ok {
		return id
	}
	return -1
}

// SamplePosition draws a uniform point on the emitter's surface
func (r *Registry) SamplePosition(sampler core.Sampler, e *Emitter) PositionSample {
	return e.SamplePosition(sampler)
}

// Emitters returns all registered emitters in id order
func (r *Registry) Emitters() []*Emitter {
	return r.emitters
}

// String summarizes the registry for logs
func (r *Registry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d emitter(s), %s selection", len(r.emitters), r.selection)
	for id, e := range r.emitters {
		fmt.Fprintf(&sb, "; #%d shape %d area %.4f radiance %v", id, e.ShapeID, e.Area, e.Radiance)
	}
	return sb.String()
}
