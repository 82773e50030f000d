package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func randomTriangles(random *rand.Rand, n int) []*Triangle {
	triangles := make([]*Triangle, n)
	for i := range triangles {
		base := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		jitter := func() core.Vec3 {
			return core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5)
		}
		triangles[i] = NewTriangle(base, base.Add(jitter()), base.Add(jitter()))
		triangles[i].PrimID = i
	}
	return triangles
}

func bruteForceHit(triangles []*Triangle, ray core.Ray, tMin, tMax float64) (int, float64) {
	closest := -1
	for _, t := range triangles {
		if tHit, _, _, ok := t.Intersect(ray, tMin, tMax); ok {
			tMax = tHit
			closest = t.PrimID
		}
	}
	return closest, tMax
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	triangles := randomTriangles(random, 500)
	bvh := NewBVH(triangles)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
		target := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		ray := core.NewRay(origin, target.Subtract(origin))

		wantID, wantT := bruteForceHit(triangles, ray, 1e-4, math.Inf(1))
		si, ok := bvh.Intersect(ray, 1e-4, math.Inf(1))

		if ok != (wantID >= 0) {
			t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, ok, wantID >= 0)
		}
		if !ok {
			continue
		}
		hits++
		if si.PrimID != wantID || math.Abs(si.T-wantT) > 1e-9 {
			t.Fatalf("ray %d: BVH found prim %d at %f, expected prim %d at %f", i, si.PrimID, si.T, wantID, wantT)
		}
	}

	if hits == 0 {
		t.Error("test rays never hit anything")
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0, math.Inf(1)); ok {
		t.Error("empty BVH should never report a hit")
	}
	if stats := bvh.Stats(); stats.TotalNodes != 0 {
		t.Errorf("empty BVH should have no nodes, got %+v", stats)
	}
}

func TestBVH_Stats(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	triangles := randomTriangles(random, 100)
	stats := NewBVH(triangles).Stats()

	if stats.TotalTriangles != len(triangles) {
		t.Errorf("Expected %d triangles in leaves, got %d", len(triangles), stats.TotalTriangles)
	}
	if stats.LeafNodes < 2 || stats.MaxDepth < 1 {
		t.Errorf("Expected a split hierarchy, got %+v", stats)
	}
}
