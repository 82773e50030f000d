package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// NewUVSphere tessellates a sphere into a latitude/longitude grid. Normals
// point outward, or towards the center when inward is set, and the winding
// order agrees with them.
func NewUVSphere(name string, center core.Vec3, radius float64, segments, rings, materialID int, inward bool) *TriangleMesh {
	segments = max(segments, 3)
	rings = max(rings, 2)
	m := NewTriangleMesh(name)

	index := func(ring, segment int) int {
		return ring*(segments+1) + segment
	}

	for i := 0; i <= rings; i++ {
		sinTheta, cosTheta := math.Sincos(math.Pi * float64(i) / float64(rings))
		// poles must be a single point or a hole opens around the axis
		if i == 0 || i == rings {
			sinTheta, cosTheta = 0, math.Copysign(1, cosTheta)
		}
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			n := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
			m.AddVertex(center.Add(n.Multiply(radius)))
			if inward {
				n = n.Negate()
			}
			m.AddNormal(n)
			m.AddUV(core.NewVec2(float64(j)/float64(segments), 1-float64(i)/float64(rings)))
		}
	}

	addFace := func(a, b, c int) {
		if inward {
			b, c = c, b
		}
		m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, N: [3]int{a, b, c}, UV: [3]int{a, b, c}, MaterialID: materialID})
	}

	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a, b := index(i, j), index(i+1, j)
			c, d := index(i+1, j+1), index(i, j+1)
			// the first and last rings collapse to a pole
			if i > 0 {
				addFace(a, b, d)
			}
			if i < rings-1 {
				addFace(b, c, d)
			}
		}
	}

	return m
}

// NewQuadMesh creates a two-triangle parallelogram whose normal is u×v
func NewQuadMesh(name string, corner, u, v core.Vec3, materialID int) *TriangleMesh {
	m := NewTriangleMesh(name)
	m.AddQuad(corner, u, v, materialID)
	return m
}

// NewBoxMesh creates an axis-aligned box with outward facing sides
func NewBoxMesh(name string, minCorner, maxCorner core.Vec3, materialID int) *TriangleMesh {
	d := maxCorner.Subtract(minCorner)
	dx := core.NewVec3(d.X, 0, 0)
	dy := core.NewVec3(0, d.Y, 0)
	dz := core.NewVec3(0, 0, d.Z)

	m := NewTriangleMesh(name)
	m.AddQuad(minCorner, dz, dy, materialID)                                           // -x
	m.AddQuad(core.NewVec3(maxCorner.X, minCorner.Y, minCorner.Z), dy, dz, materialID) // +x
	m.AddQuad(minCorner, dx, dz, materialID)                                           // -y
	m.AddQuad(core.NewVec3(minCorner.X, maxCorner.Y, minCorner.Z), dz, dx, materialID) // +y
	m.AddQuad(minCorner, dy, dx, materialID)                                           // -z
	m.AddQuad(core.NewVec3(minCorner.X, minCorner.Y, maxCorner.Z), dx, dy, materialID) // +z
	return m
}
