// Package geometry implements the primitives, BVH builder and
// intersection kernels the ray tracer core traverses every frame:
// spheres, planes, Möller-Trumbore triangles, a SAH-binned BVH over
// triangle meshes, and the slab-test AABB check that prunes it.
package geometry

import (
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// RayEpsilon is both the minimum distance along a ray (avoids
// re-hitting the surface a ray was spawned from; the sphere and plane
// kernels exclude t == RayEpsilon, the triangle kernel includes it) and the
// self-shadow offset the shading pipeline pushes hit points along
// their normal before firing a shadow ray.
const RayEpsilon = 1e-4

// Ray is a half-line in world space. Direction is always unit length;
// InvDirection is kept in sync so the slab test can reuse it across
// every AABB it visits without re-dividing.
type Ray struct {
	Origin       math32.Vec3
	Direction    math32.Vec3
	InvDirection math32.Vec3
	TMin         float32
	TMax         float32
}

// NewRay builds a ray from an origin and direction, normalizing the
// direction and precomputing its reciprocal. A zero-length direction
// (the caller's bug, not ours) yields InvDirection components of +-Inf,
// which the slab test's IEEE min/max handles correctly.
func NewRay(origin, direction math32.Vec3, tMax float32) Ray {
	direction = direction.Normalize()
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: math32.NewVec3(1/direction.X, 1/direction.Y, 1/direction.Z),
		TMin:         RayEpsilon,
		TMax:         tMax,
	}
}

// At returns the point reached after traveling distance t along the ray.
func (r Ray) At(t float32) math32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitRecord is the mutable output of an intersection kernel. The zero
// value carries DidHit=false and T=0; NewHitRecord starts T at +Inf so
// a chain of closest-hit candidates can compare against it directly.
type HitRecord struct {
	T          float32
	Point      math32.Vec3
	Normal     math32.Vec3
	MaterialID int
	DidHit     bool
}

// NewHitRecord returns the initial state described in the data model:
// T = +Inf, DidHit = false.
func NewHitRecord() HitRecord {
	return HitRecord{T: float32(math.Inf(1))}
}
