package geometry

import (
	stdmath "math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// AABB is an axis-aligned bounding box stored as its min and max corners.
type AABB struct {
	Min math32.Vec3
	Max math32.Vec3
}

// EmptyAABB returns an AABB inverted so that the first Grow call always
// wins, matching the teacher's MaxFloat32/-MaxFloat32 seeding pattern
// in editor/raycast.go's computeAABB.
func EmptyAABB() AABB {
	return AABB{
		Min: math32.NewVec3(maxFloat32, maxFloat32, maxFloat32),
		Max: math32.NewVec3(-maxFloat32, -maxFloat32, -maxFloat32),
	}
}

const maxFloat32 = 3.4028235e+38

// Grow expands the box to include p.
func (b *AABB) Grow(p math32.Vec3) {
	b.Min = math32.Vec3Min(b.Min, p)
	b.Max = math32.Vec3Max(b.Max, p)
}

// GrowBox expands the box to include another box.
func (b *AABB) GrowBox(other AABB) {
	b.Min = math32.Vec3Min(b.Min, other.Min)
	b.Max = math32.Vec3Max(b.Max, other.Max)
}

// Area returns the SAH surface-area proxy xy+yz+zx (half the true
// surface area; the missing factor of 2 cancels out of every cost
// comparison the BVH builder makes).
func (b AABB) Area() float32 {
	extent := b.Max.Sub(b.Min)
	return extent.X*extent.Y + extent.Y*extent.Z + extent.Z*extent.X
}

// Hit runs the slab test against a ray's precomputed reciprocal
// direction. It reports only whether the ray intersects the box; it
// never fills a HitRecord. A zero-valued direction axis gives an
// InvDirection component of ±Inf, and when the ray origin also lies on
// that axis's slab plane the product is NaN; minOf/maxOf discard a NaN
// operand instead of letting it corrupt tMin/tMax, per spec §4.2.
func (b AABB) Hit(r Ray) bool {
	t1 := (b.Min.X - r.Origin.X) * r.InvDirection.X
	t2 := (b.Max.X - r.Origin.X) * r.InvDirection.X
	t3 := (b.Min.Y - r.Origin.Y) * r.InvDirection.Y
	t4 := (b.Max.Y - r.Origin.Y) * r.InvDirection.Y
	t5 := (b.Min.Z - r.Origin.Z) * r.InvDirection.Z
	t6 := (b.Max.Z - r.Origin.Z) * r.InvDirection.Z

	tMin := maxOf(maxOf(minOf(t1, t2), minOf(t3, t4)), minOf(t5, t6))
	tMax := minOf(minOf(maxOf(t1, t2), maxOf(t3, t4)), maxOf(t5, t6))

	return tMax > 0 && tMax >= tMin
}

// minOf and maxOf implement IEEE min/max: a NaN operand is discarded in
// favor of the other operand, rather than propagating (unlike a bare
// a<b/a>b comparison, which silently falls through to b when either
// operand is NaN).
func minOf(a, b float32) float32 {
	if stdmath.IsNaN(float64(a)) {
		return b
	}
	if stdmath.IsNaN(float64(b)) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b float32) float32 {
	if stdmath.IsNaN(float64(a)) {
		return b
	}
	if stdmath.IsNaN(float64(b)) {
		return a
	}
	if a > b {
		return a
	}
	return b
}
