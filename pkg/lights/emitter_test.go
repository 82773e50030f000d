package lights

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

// triangleList is a minimal TriangleSource
type triangleList [][3]core.Vec3

func (l triangleList) NumFaces() int { return len(l) }

func (l triangleList) FaceVertices(i int) (core.Vec3, core.Vec3, core.Vec3) {
	return l[i][0], l[i][1], l[i][2]
}

// two faces in the z=0 plane with areas 0.5 and 1.5, normals +Z
func testFaces() triangleList {
	return triangleList{
		{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(2, 0, 0), core.NewVec3(5, 0, 0), core.NewVec3(2, 1, 0)},
	}
}

func TestNewEmitter_Area(t *testing.T) {
	e, err := NewEmitter(4, core.Splat(10), testFaces())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(e.Area-2) > 1e-12 {
		t.Errorf("Expected area 2, got %f", e.Area)
	}
	if math.Abs(e.PositionPDF()-0.5) > 1e-12 {
		t.Errorf("Expected position pdf 0.5, got %f", e.PositionPDF())
	}
	if p := e.FaceDistribution().PDF(1); math.Abs(p-0.75) > 1e-12 {
		t.Errorf("Expected face 1 probability 0.75, got %f", p)
	}
	if math.Abs(e.Power()-10*2*math.Pi) > 1e-4 {
		t.Errorf("Expected power 20π, got %f", e.Power())
	}
}

func TestNewEmitter_Empty(t *testing.T) {
	degenerate := triangleList{{core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)}}
	for name, source := range map[string]TriangleSource{"no faces": triangleList{}, "zero area": degenerate} {
		if _, err := NewEmitter(0, core.Splat(1), source); !errors.Is(err, ErrEmptyEmitter) {
			t.Errorf("%s: expected ErrEmptyEmitter, got %v", name, err)
		}
	}
}

func TestEmitter_SamplePosition(t *testing.T) {
	e, err := NewEmitter(0, core.Splat(1), testFaces())
	if err != nil {
		t.Fatal(err)
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	const n = 20000
	onSecondFace := 0
	for i := 0; i < n; i++ {
		s := e.SamplePosition(sampler)

		if math.Abs(s.PDF-0.5) > 1e-12 {
			t.Fatalf("Expected area pdf 1/area = 0.5, got %f", s.PDF)
		}
		if !s.Normal.Equals(core.NewVec3(0, 0, 1)) {
			t.Fatalf("Expected normal +Z, got %v", s.Normal)
		}
		if s.Point.Z != 0 || s.Point.Y < 0 {
			t.Fatalf("point %v is off the surface", s.Point)
		}
		if s.Point.X >= 2 {
			onSecondFace++
		}
	}

	// faces are chosen in proportion to their area
	if share := float64(onSecondFace) / n; math.Abs(share-0.75) > 0.02 {
		t.Errorf("Expected 75%% of samples on the larger face, got %.1f%%", share*100)
	}
}

func TestEmitter_Center(t *testing.T) {
	square := triangleList{
		{core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(2, 2, 0)},
		{core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 0), core.NewVec3(0, 2, 0)},
	}
	e, err := NewEmitter(0, core.Splat(1), square)
	if err != nil {
		t.Fatal(err)
	}
	if c := e.Center(); !c.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected center (1, 1, 0), got %v", c)
	}
}
