package geometry

import (
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// Sphere is an origin+radius primitive.
type Sphere struct {
	Origin     math32.Vec3
	Radius     float32
	MaterialID int
}

// Hit intersects r against s. In shadowMode it returns as soon as any
// valid intersection is found and leaves hit untouched.
func (s Sphere) Hit(r Ray, hit *HitRecord, shadowMode bool) bool {
	toCenter := r.Origin.Sub(s.Origin)

	a := r.Direction.Dot(r.Direction)
	b := r.Direction.Mul(2).Dot(toCenter)
	c := toCenter.Dot(toCenter) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))

	t := (-b - sqrtDisc) / (2 * a)
	if t <= r.TMin || t > r.TMax {
		t = (-b + sqrtDisc) / (2 * a)
		if t <= r.TMin || t > r.TMax {
			return false
		}
	}

	if shadowMode {
		return true
	}

	hit.T = t
	hit.Point = r.At(t)
	hit.Normal = hit.Point.Sub(s.Origin)
	hit.MaterialID = s.MaterialID
	hit.DidHit = true
	return true
}
