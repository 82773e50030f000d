package material

import "github.com/df07/go-light-transport/pkg/core"

// SurfaceInteraction describes a ray hit. Wo and Wi are unit directions in the
// local shading frame (FrameNs); FrameNg is the frame of the true geometric normal.
// An interaction is created per ray query and never shared between pixels.
type SurfaceInteraction struct {
	P  core.Vec3 // hit position
	T  float64   // ray parameter of the hit
	UV core.Vec2 // texture coordinates

	Wo core.Vec3 // direction towards the ray origin, local
	Wi core.Vec3 // incoming light direction, local

	FrameNs core.Frame // shading frame (interpolated normal)
	FrameNg core.Frame // geometric frame (face normal)

	ShapeID    int
	MaterialID int
	PrimID     int
}

// ToWorld converts a local shading-frame direction to world space
func (si *SurfaceInteraction) ToWorld(local core.Vec3) core.Vec3 {
	return si.FrameNs.ToWorld(local)
}

// ToLocal converts a world-space direction into the shading frame
func (si *SurfaceInteraction) ToLocal(world core.Vec3) core.Vec3 {
	return si.FrameNs.ToLocal(world).Normalize()
}

// SpawnRay starts a ray leaving the hit point along a local direction
func (si *SurfaceInteraction) SpawnRay(local core.Vec3) core.Ray {
	return core.SpawnRay(si.P, si.FrameNg.N, si.ToWorld(local))
}

// SpawnRayTo starts a ray from the hit point towards a world-space point
func (si *SurfaceInteraction) SpawnRayTo(target core.Vec3) core.Ray {
	return core.SpawnRay(si.P, si.FrameNg.N, target.Subtract(si.P))
}

// FacesGeometrically reports whether both local directions lie on the front
// side of the geometric normal
func (si *SurfaceInteraction) FacesGeometrically(wi, wo core.Vec3) bool {
	return si.FrameNg.CosTheta(si.ToWorld(wi)) > 0 && si.FrameNg.CosTheta(si.ToWorld(wo)) > 0
}
