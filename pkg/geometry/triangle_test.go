package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name: "Ray hits triangle center",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, -1), // origin
				core.NewVec3(0, 0, 1),        // direction (toward +Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name: "Ray hits triangle edge",
			ray: core.NewRay(
				core.NewVec3(0.5, 0, -1), // origin (on edge between v0 and v1)
				core.NewVec3(0, 0, 1),    // direction (toward +Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name: "Ray misses triangle",
			ray: core.NewRay(
				core.NewVec3(1, 1, -1), // origin (outside triangle)
				core.NewVec3(0, 0, 1),  // direction (toward +Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name: "Ray parallel to triangle",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 0), // origin (in triangle plane)
				core.NewVec3(1, 0, 0),       // direction (parallel to plane)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name: "Ray hits from behind",
			ray: core.NewRay(
				core.NewVec3(0.25, 0.25, 1), // origin (behind triangle)
				core.NewVec3(0, 0, -1),      // direction (toward -Z)
			),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)

			if isHit != tt.shouldHit {
				t.Errorf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
				return
			}

			if tt.shouldHit {
				if hit == nil {
					t.Error("Expected hit record, got nil")
					return
				}

				if math.Abs(hit.T-tt.expectedT) > 1e-6 {
					t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
				}

				// Verify hit point is on the triangle plane
				expectedPoint := tt.ray.At(hit.T)
				if expectedPoint.Subtract(hit.P).Length() > 1e-6 {
					t.Errorf("Hit point mismatch: expected %v, got %v", expectedPoint, hit.P)
				}
			}
		})
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(2, 0, 0)
	v2 := core.NewVec3(1, 3, 0)
	triangle := NewTriangle(v0, v1, v2)

	bbox := triangle.BoundingBox()

	expectedMin := core.NewVec3(0, 0, 0)
	expectedMax := core.NewVec3(2, 3, 0)

	const tolerance = 1e-9
	if bbox.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("Expected min %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("Expected max %v, got %v", expectedMax, bbox.Max)
	}
}

func TestTriangle_InteractionFrames(t *testing.T) {
	// counter-clockwise in the XY plane seen from +Z, so the face normal is +Z
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	triangle.ShapeID, triangle.MaterialID, triangle.PrimID = 3, 4, 5

	if !triangle.Normal().Equals(core.NewVec3(0, 0, 1)) {
		t.Fatalf("Expected normal +Z, got %v", triangle.Normal())
	}
	if math.Abs(triangle.Area()-0.5) > 1e-12 {
		t.Errorf("Expected area 0.5, got %f", triangle.Area())
	}

	front := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, ok := triangle.Hit(front, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit from the front")
	}
	if hit.Wo.Z <= 0 {
		t.Errorf("Wo should face the front side, got %v", hit.Wo)
	}
	if hit.ShapeID != 3 || hit.MaterialID != 4 || hit.PrimID != 5 {
		t.Errorf("ids not propagated: %+v", hit)
	}

	// surfaces are one-sided: a hit from behind sees Wo below the horizon
	back := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))
	hit, ok = triangle.Hit(back, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit from behind")
	}
	if hit.Wo.Z >= 0 {
		t.Errorf("Wo should be below the horizon for a back hit, got %v", hit.Wo)
	}
}

func TestTriangle_SmoothNormalsAndUVs(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	tilted := core.NewVec3(1, 0, 1)
	triangle.SetNormals(tilted, tilted, tilted)
	triangle.SetUVs(core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1))

	ray := core.NewRay(core.NewVec3(0.25, 0.5, 1), core.NewVec3(0, 0, -1))
	hit, ok := triangle.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}

	if !hit.FrameNs.N.Equals(tilted.Normalize()) {
		t.Errorf("Shading normal should be interpolated, got %v", hit.FrameNs.N)
	}
	if !hit.FrameNg.N.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Geometric normal should stay the face normal, got %v", hit.FrameNg.N)
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.5), got %v", hit.UV)
	}
}
