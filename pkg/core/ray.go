package core

// RayEpsilon is the distance secondary rays are pushed off a surface to avoid
// re-intersecting the surface they start on
const RayEpsilon = 1e-4

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// SpawnRay starts a ray at p heading along dir, offset along the geometric
// normal n onto the side dir points to
func SpawnRay(p, n, dir Vec3) Ray {
	offset := n.Multiply(RayEpsilon)
	if dir.Dot(n) < 0 {
		offset = offset.Negate()
	}
	return NewRay(p.Add(offset), dir)
}
