package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// ErrEmptyEmitter is returned for emissive shapes without any surface area
var ErrEmptyEmitter = errors.New("emitter has no surface area")

// TriangleSource exposes the faces of an emissive shape
type TriangleSource interface {
	NumFaces() int
	FaceVertices(i int) (core.Vec3, core.Vec3, core.Vec3)
}

// Emitter is an emissive shape with constant radiance. Faces are chosen in
// proportion to their area, so positions are uniform over the surface.
type Emitter struct {
	ShapeID  int
	Area     float64   // Total surface area
	Radiance core.Vec3 // Constant emitted radiance

	source TriangleSource
	faces  *core.Distribution1D
}

// PositionSample is a point drawn on an emitter
type PositionSample struct {
	Point  core.Vec3
	Normal core.Vec3 // Face normal from the winding order
	PDF    float64   // Area-measure density
}

// NewEmitter scans the faces of a shape and builds its area distribution
func NewEmitter(shapeID int, radiance core.Vec3, source TriangleSource) (*Emitter, error) {
	faces := core.NewDistribution1D()
	for i := 0; i < source.NumFaces(); i++ {
		faces.Add(faceArea(source.FaceVertices(i)))
	}

	area := faces.Normalize()
	if source.NumFaces() == 0 || area <= 0 {
		return nil, fmt.Errorf("shape %d: %w", shapeID, ErrEmptyEmitter)
	}

	return &Emitter{
		ShapeID:  shapeID,
		Area:     area,
		Radiance: radiance,
		source:   source,
		faces:    faces,
	}, nil
}

func faceArea(v0, v1, v2 core.Vec3) float64 {
	return 0.5 * v1.Subtract(v0).Cross(v2.Subtract(v0)).Length()
}

// FaceDistribution returns the area distribution over the emitter's faces
func (e *Emitter) FaceDistribution() *core.Distribution1D {
	return e.faces
}

// PositionPDF returns the area-measure density of uniform position sampling
func (e *Emitter) PositionPDF() float64 {
	return 1.0 / e.Area
}

// Power returns the luminance of the flux leaving the surface
func (e *Emitter) Power() float64 {
	return e.Radiance.Luminance709() * e.Area * math.Pi
}

// Center returns the area-weighted centroid of the emitter's faces
func (e *Emitter) Center() core.Vec3 {
	center := core.Vec3{}
	for i := 0; i < e.source.NumFaces(); i++ {
		v0, v1, v2 := e.source.FaceVertices(i)
		centroid := v0.Add(v1).Add(v2).Multiply(1.0 / 3.0)
		center = center.Add(centroid.Multiply(e.faces.PDF(i)))
	}
	return center
}

// SamplePosition picks a face by area and a uniform point on it
func (e *Emitter) SamplePosition(sampler core.Sampler) PositionSample {
	face := e.faces.Sample(sampler.Get1D())
	v0, v1, v2 := e.source.FaceVertices(face)

	b := core.SampleUniformTriangle(sampler.Get2D())
	point := v0.Multiply(1 - b.X - b.Y).Add(v1.Multiply(b.X)).Add(v2.Multiply(b.Y))
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()

	pdf := 0.0
	if a := faceArea(v0, v1, v2); a > 0 {
		pdf = e.faces.PDF(face) / a
	}

	return PositionSample{Point: point, Normal: normal, PDF: pdf}
}
