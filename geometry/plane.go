package geometry

import math32 "github.com/mrigankad/bvhtracer/math"

// Plane is an infinite plane defined by a point on it and a unit normal.
type Plane struct {
	Origin     math32.Vec3
	Normal     math32.Vec3
	MaterialID int
}

// Hit intersects r against p. A ray parallel to the plane (d.n == 0)
// is rejected before t is computed, which is the degenerate-geometry
// path §7 calls out rather than an error.
func (p Plane) Hit(r Ray, hit *HitRecord, shadowMode bool) bool {
	denom := r.Direction.Dot(p.Normal)
	if denom == 0 {
		return false
	}
	t := p.Origin.Sub(r.Origin).Dot(p.Normal) / denom

	if t <= r.TMin || t > r.TMax {
		return false
	}

	if shadowMode {
		return true
	}

	hit.Normal = p.Normal
	hit.Point = r.At(t)
	hit.T = t
	hit.MaterialID = p.MaterialID
	hit.DidHit = true
	return true
}
