package core

import "math"

// Frame is an orthonormal basis anchored at a normal N. Local coordinates put
// N on the +z axis, which is the pole every warping function samples around.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the normal n
func NewFrame(n Vec3) Frame {
	n = n.Normalize()
	s, t := coordinateSystem(n)
	return Frame{S: s, T: t, N: n}
}

// coordinateSystem completes a unit vector a into a right-handed basis (b, c, a)
func coordinateSystem(a Vec3) (Vec3, Vec3) {
	var c Vec3
	if math.Abs(a.X) > math.Abs(a.Y) {
		invLen := 1.0 / math.Sqrt(a.X*a.X+a.Z*a.Z)
		c = Vec3{a.Z * invLen, 0, -a.X * invLen}
	} else {
		invLen := 1.0 / math.Sqrt(a.Y*a.Y+a.Z*a.Z)
		c = Vec3{0, a.Z * invLen, -a.Y * invLen}
	}
	b := c.Cross(a)
	return b, c
}

// ToLocal expresses a world-space direction in this frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld expresses a local direction in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine between a world-space direction and the frame normal
func (f Frame) CosTheta(world Vec3) float64 {
	return world.Dot(f.N)
}

// LocalCosTheta returns the cosine of a local direction with the pole
func LocalCosTheta(v Vec3) float64 {
	return v.Z
}
