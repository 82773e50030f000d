package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Triangles   []*Triangle // Triangles for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-triangle intersection
type BVH struct {
	Root   *BVHNode
	Center core.Vec3 // Center of the scene bounds
	Radius float64   // Radius of the sphere enclosing the scene bounds
}

// NewBVH constructs a BVH from a slice of triangles
func NewBVH(triangles []*Triangle) *BVH {
	if len(triangles) == 0 {
		return &BVH{}
	}

	// Work on a copy so the caller's slice keeps its order
	trianglesCopy := make([]*Triangle, len(triangles))
	copy(trianglesCopy, triangles)

	root := buildBVH(trianglesCopy)
	center, radius := root.BoundingBox.BoundingSphere()
	return &BVH{Root: root, Center: center, Radius: radius}
}

// Leaf threshold: if we have this many or fewer triangles, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(triangles []*Triangle) *BVHNode {
	boundingBox := triangles[0].BoundingBox()
	for i := 1; i < len(triangles); i++ {
		boundingBox = boundingBox.Union(triangles[i].BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: boundingBox, Triangles: triangles}
	if len(triangles) <= leafThreshold {
		return leaf
	}

	axis, splitPos, ok := findSplit(boundingBox)
	if !ok {
		return leaf
	}

	left, right := partitionTriangles(triangles, axis, splitPos)

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// findSplit returns the longest axis and the midpoint of the bounds along it
func findSplit(boundingBox core.AABB) (int, float64, bool) {
	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Axis(axis), boundingBox.Max.Axis(axis)

	// Skip if no extent along this axis
	if maxVal <= minVal {
		return -1, 0, false
	}
	return axis, (minVal + maxVal) * 0.5, true
}

// partitionTriangles splits triangles by the centroid of their bounds
func partitionTriangles(triangles []*Triangle, axis int, splitPos float64) ([]*Triangle, []*Triangle) {
	var left, right []*Triangle
	for _, t := range triangles {
		if t.BoundingBox().Center().Axis(axis) < splitPos {
			left = append(left, t)
		} else {
			right = append(right, t)
		}
	}
	return left, right
}

// bvhHit records the closest triangle hit found so far
type bvhHit struct {
	triangle  *Triangle
	t, b1, b2 float64
}

// Intersect returns the nearest hit along the ray within (tMin, tMax)
func (bvh *BVH) Intersect(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if bvh.Root == nil {
		return nil, false
	}

	closest := bvhHit{t: tMax}
	bvh.hitNode(bvh.Root, ray, tMin, &closest)
	if closest.triangle == nil {
		return nil, false
	}
	return closest.triangle.Interaction(ray, closest.t, closest.b1, closest.b2), true
}

// hitNode recursively tests ray intersection with BVH nodes, shrinking the
// search interval as closer hits are found
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin float64, closest *bvhHit) {
	// First check if ray hits the bounding box
	if !node.BoundingBox.Hit(ray, tMin, closest.t) {
		return
	}

	// If this is a leaf node, test against all triangles using linear search
	if node.Triangles != nil {
		for _, t := range node.Triangles {
			if tHit, b1, b2, ok := t.Intersect(ray, tMin, closest.t); ok {
				*closest = bvhHit{triangle: t, t: tHit, b1: b1, b2: b2}
			}
		}
		return
	}

	if node.Left != nil {
		bvh.hitNode(node.Left, ray, tMin, closest)
	}
	if node.Right != nil {
		bvh.hitNode(node.Right, ray, tMin, closest)
	}
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes     int
	LeafNodes      int
	MaxDepth       int
	AvgDepth       float64
	TotalTriangles int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.Triangles != nil {
		stats.LeafNodes++
		stats.TotalTriangles += len(node.Triangles)
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	if node.Left != nil {
		collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		collectStats(node.Right, depth+1, stats)
	}
}
