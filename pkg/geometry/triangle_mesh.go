package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrFaceIndex is returned when a face references a missing vertex, normal or UV
var ErrFaceIndex = errors.New("face index out of range")

// Face indexes the vertices of one triangle. N and UV entries are -1 when
// the face carries no normals or texture coordinates.
type Face struct {
	V          [3]int
	N          [3]int
	UV         [3]int
	MaterialID int
}

// TriangleMesh is an indexed triangle mesh forming one shape of the scene
type TriangleMesh struct {
	Name     string
	ShapeID  int
	Vertices []core.Vec3
	Normals  []core.Vec3
	UVs      []core.Vec2
	Faces    []Face
}

// NewTriangleMesh creates an empty mesh
func NewTriangleMesh(name string) *TriangleMesh {
	return &TriangleMesh{Name: name}
}

// AddVertex appends a vertex and returns its index
func (m *TriangleMesh) AddVertex(v core.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddNormal appends a vertex normal and returns its index
func (m *TriangleMesh) AddNormal(n core.Vec3) int {
	m.Normals = append(m.Normals, n)
	return len(m.Normals) - 1
}

// AddUV appends a texture coordinate and returns its index
func (m *TriangleMesh) AddUV(uv core.Vec2) int {
	m.UVs = append(m.UVs, uv)
	return len(m.UVs) - 1
}

// AddTriangle appends a face over three vertex indices without normals or UVs
func (m *TriangleMesh) AddTriangle(i0, i1, i2, materialID int) {
	m.Faces = append(m.Faces, Face{
		V:          [3]int{i0, i1, i2},
		N:          [3]int{-1, -1, -1},
		UV:         [3]int{-1, -1, -1},
		MaterialID: materialID,
	})
}

// AddQuad appends the parallelogram corner, corner+u, corner+u+v, corner+v as
// two triangles whose normal is u×v. Texture coordinates run from (0,0) at
// the corner to (1,1) at the opposite vertex.
func (m *TriangleMesh) AddQuad(corner, u, v core.Vec3, materialID int) {
	i0 := m.AddVertex(corner)
	i1 := m.AddVertex(corner.Add(u))
	i2 := m.AddVertex(corner.Add(u).Add(v))
	i3 := m.AddVertex(corner.Add(v))
	t0 := m.AddUV(core.NewVec2(0, 0))
	t1 := m.AddUV(core.NewVec2(1, 0))
	t2 := m.AddUV(core.NewVec2(1, 1))
	t3 := m.AddUV(core.NewVec2(0, 1))
	m.AddTriangle(i0, i1, i2, materialID)
	m.Faces[len(m.Faces)-1].UV = [3]int{t0, t1, t2}
	m.AddTriangle(i0, i2, i3, materialID)
	m.Faces[len(m.Faces)-1].UV = [3]int{t0, t2, t3}
}

// ClearNormals drops the vertex normals so every face is shaded with its
// geometric normal
func (m *TriangleMesh) ClearNormals() {
	m.Normals = nil
	for i := range m.Faces {
		m.Faces[i].N = [3]int{-1, -1, -1}
	}
}

// NumFaces returns the number of triangles
func (m *TriangleMesh) NumFaces() int {
	return len(m.Faces)
}

// FaceVertices returns the three vertex positions of face i
func (m *TriangleMesh) FaceVertices(i int) (core.Vec3, core.Vec3, core.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
}

// MaterialID returns the material of the first face, which stands for the
// material of the whole shape when deciding whether it emits light
func (m *TriangleMesh) MaterialID() int {
	if len(m.Faces) == 0 {
		return -1
	}
	return m.Faces[0].MaterialID
}

// Validate checks every face index against the vertex, normal and UV arrays
func (m *TriangleMesh) Validate() error {
	for fi, f := range m.Faces {
		for k := 0; k < 3; k++ {
			if f.V[k] < 0 || f.V[k] >= len(m.Vertices) {
				return fmt.Errorf("mesh %q face %d vertex %d: %w", m.Name, fi, f.V[k], ErrFaceIndex)
			}
			if f.N[k] >= len(m.Normals) {
				return fmt.Errorf("mesh %q face %d normal %d: %w", m.Name, fi, f.N[k], ErrFaceIndex)
			}
			if f.UV[k] >= len(m.UVs) {
				return fmt.Errorf("mesh %q face %d uv %d: %w", m.Name, fi, f.UV[k], ErrFaceIndex)
			}
		}
	}
	return nil
}

// Triangles builds one triangle per face, tagged with the mesh's shape id,
// the face's material id and the face index as primitive id
func (m *TriangleMesh) Triangles() []*Triangle {
	triangles := make([]*Triangle, 0, len(m.Faces))
	for fi, f := range m.Faces {
		v0, v1, v2 := m.FaceVertices(fi)
		t := NewTriangle(v0, v1, v2)
		t.ShapeID = m.ShapeID
		t.MaterialID = f.MaterialID
		t.PrimID = fi

		if f.N[0] >= 0 && f.N[1] >= 0 && f.N[2] >= 0 {
			t.SetNormals(m.Normals[f.N[0]], m.Normals[f.N[1]], m.Normals[f.N[2]])
		}
		if f.UV[0] >= 0 && f.UV[1] >= 0 && f.UV[2] >= 0 {
			t.SetUVs(m.UVs[f.UV[0]], m.UVs[f.UV[1]], m.UVs[f.UV[2]])
		}
		triangles = append(triangles, t)
	}
	return triangles
}

// BoundingBox returns the bounds of all vertices
func (m *TriangleMesh) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(m.Vertices...)
}

// Area returns the total surface area of the mesh
func (m *TriangleMesh) Area() float64 {
	total := 0.0
	for fi := range m.Faces {
		v0, v1, v2 := m.FaceVertices(fi)
		total += 0.5 * v1.Subtract(v0).Cross(v2.Subtract(v0)).Length()
	}
	return total
}

// Transform applies an affine transform to the vertices and the inverse
// transpose to the normals
func (m *TriangleMesh) Transform(transform mgl64.Mat4) {
	for i, v := range m.Vertices {
		p := mgl64.TransformCoordinate(mgl64.Vec3{v.X, v.Y, v.Z}, transform)
		m.Vertices[i] = core.NewVec3(p[0], p[1], p[2])
	}

	normalMatrix := transform.Inv().Transpose()
	for i, n := range m.Normals {
		d := mgl64.TransformNormal(mgl64.Vec3{n.X, n.Y, n.Z}, normalMatrix)
		m.Normals[i] = core.NewVec3(d[0], d[1], d[2]).Normalize()
	}
}
