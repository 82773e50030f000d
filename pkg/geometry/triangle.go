package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// Triangle is a single mesh face with optional per-vertex normals and UVs
type Triangle struct {
	V0, V1, V2    core.Vec3 // The three vertices
	N0, N1, N2    core.Vec3 // Vertex normals (used when smooth is set)
	UV0, UV1, UV2 core.Vec2 // Vertex texture coordinates

	ShapeID    int
	MaterialID int
	PrimID     int

	normal core.Vec3 // Cached face normal from the winding order
	area   float64
	bbox   core.AABB
	smooth bool
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}

	// Precompute normal, area and bounding box for efficiency
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	t.normal = cross.Normalize()
	t.area = 0.5 * cross.Length()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// SetNormals assigns vertex normals used for the shading frame
func (t *Triangle) SetNormals(n0, n1, n2 core.Vec3) {
	t.N0, t.N1, t.N2 = n0.Normalize(), n1.Normalize(), n2.Normalize()
	t.smooth = true
}

// SetUVs assigns vertex texture coordinates
func (t *Triangle) SetUVs(uv0, uv1, uv2 core.Vec2) {
	t.UV0, t.UV1, t.UV2 = uv0, uv1, uv2
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore
// algorithm and returns the ray parameter and the barycentric weights of V1 and V2
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (float64, float64, float64, bool) {
	const epsilon = 1e-12

	// Calculate two edge vectors
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Calculate determinant
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)

	// Check if intersection is outside triangle
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	// Check if intersection is outside triangle
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	// Check if intersection is within valid range
	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return 0, 0, 0, false
	}

	return tHit, u, v, true
}

// Hit intersects the ray and builds the surface interaction for the hit
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	tHit, b1, b2, ok := t.Intersect(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return t.Interaction(ray, tHit, b1, b2), true
}

// Interaction fills a surface interaction for a hit at barycentric (b1, b2).
// The geometric frame follows the winding order, so surfaces are one-sided.
func (t *Triangle) Interaction(ray core.Ray, tHit, b1, b2 float64) *material.SurfaceInteraction {
	b0 := 1 - b1 - b2

	ns := t.normal
	if t.smooth {
		ns = t.N0.Multiply(b0).Add(t.N1.Multiply(b1)).Add(t.N2.Multiply(b2)).Normalize()
		if ns.IsZero() {
			ns = t.normal
		} else if ns.Dot(t.normal) < 0 {
			ns = ns.Negate()
		}
	}

	si := &material.SurfaceInteraction{
		P: t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(b2)),
		T: tHit,
		UV: core.NewVec2(
			t.UV0.X*b0+t.UV1.X*b1+t.UV2.X*b2,
			t.UV0.Y*b0+t.UV1.Y*b1+t.UV2.Y*b2,
		),
		FrameNs:    core.NewFrame(ns),
		FrameNg:    core.NewFrame(t.normal),
		ShapeID:    t.ShapeID,
		MaterialID: t.MaterialID,
		PrimID:     t.PrimID,
	}
	si.Wo = si.ToLocal(ray.Direction.Negate())
	return si
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the face normal implied by the winding order
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}
