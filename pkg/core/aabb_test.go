package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -1, -1), NewVec3(-1, 1, 1), NewVec3(0, 0, 0.5))

	tests := []struct {
		name       string
		ray        Ray
		tMin, tMax float64
		want       bool
	}{
		{"through center", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), true},
		{"diagonal", NewRay(NewVec3(-3, -3, -3), NewVec3(1, 1, 1).Normalize()), 0, math.Inf(1), true},
		{"parallel outside slab", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), false},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), 0, math.Inf(1), false},
		{"interval ends early", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, 3, false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)), 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.want {
				t.Errorf("Hit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABB_UnionAndSphere(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABBFromPoints(NewVec3(-1, 0, 0), NewVec3(0, 3, 1))

	u := a.Union(b)
	if !u.Min.Equals(NewVec3(-1, 0, 0)) || !u.Max.Equals(NewVec3(1, 3, 1)) {
		t.Errorf("Union = %v..%v", u.Min, u.Max)
	}
	if axis := u.LongestAxis(); axis != 1 {
		t.Errorf("LongestAxis = %d, want 1", axis)
	}

	center, radius := u.BoundingSphere()
	if !center.Equals(NewVec3(0, 1.5, 0.5)) {
		t.Errorf("Center = %v", center)
	}
	if want := math.Sqrt(1 + 1.5*1.5 + 0.25); math.Abs(radius-want) > 1e-12 {
		t.Errorf("Radius = %v, want %v", radius, want)
	}
}
