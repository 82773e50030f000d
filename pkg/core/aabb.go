package core

import "math"

// AABB is an axis-aligned bounding box
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABBFromPoints returns the smallest box enclosing all points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = NewVec3(math.Min(box.Min.X, p.X), math.Min(box.Min.Y, p.Y), math.Min(box.Min.Z, p.Z))
		box.Max = NewVec3(math.Max(box.Max.X, p.X), math.Max(box.Max.Y, p.Y), math.Max(box.Max.Z, p.Z))
	}
	return box
}

// Hit reports whether the ray overlaps the box somewhere in [tMin, tMax]
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		origin, dir := ray.Origin.Axis(axis), ray.Direction.Axis(axis)

		if math.Abs(dir) < 1e-8 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1.0 / dir
		t0, t1 := (lo-origin)*inv, (hi-origin)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin, tMax = math.Max(tMin, t0), math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns the box enclosing both boxes
func (b AABB) Union(other AABB) AABB {
	return NewAABBFromPoints(b.Min, b.Max, other.Min, other.Max)
}

// Center returns the midpoint of the box
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent
func (b AABB) LongestAxis() int {
	size := b.Max.Subtract(b.Min)
	switch {
	case size.X > size.Y && size.X > size.Z:
		return 0
	case size.Y > size.Z:
		return 1
	default:
		return 2
	}
}

// BoundingSphere returns the center and radius of the sphere through the
// corners of the box
func (b AABB) BoundingSphere() (Vec3, float64) {
	center := b.Center()
	return center, b.Max.Subtract(center).Length()
}
