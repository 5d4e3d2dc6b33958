package geometry

import math32 "github.com/mrigankad/bvhtracer/math"

// CullMode selects which triangle winding is invisible to a ray.
type CullMode int

const (
	CullNone CullMode = iota
	CullFrontFace
	CullBackFace
)

// invert swaps front/back culling for shadow-mode queries; None is
// unchanged.
func (c CullMode) invert() CullMode {
	switch c {
	case CullFrontFace:
		return CullBackFace
	case CullBackFace:
		return CullFrontFace
	default:
		return CullNone
	}
}

// Triangle is a standalone (non-mesh) triangle primitive, useful for
// tests and for scenes with only a handful of faces that don't warrant
// a BVH.
type Triangle struct {
	V0, V1, V2 math32.Vec3
	Normal     math32.Vec3
	CullMode   CullMode
	MaterialID int
}

// NewTriangle builds a triangle and derives its face normal from the
// vertex winding: normalize((v1-v0) x (v2-v0)).
func NewTriangle(v0, v1, v2 math32.Vec3, cull CullMode, materialID int) Triangle {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	return Triangle{
		V0: v0, V1: v1, V2: v2,
		Normal:     edge1.Cross(edge2).Normalize(),
		CullMode:   cull,
		MaterialID: materialID,
	}
}

// triangleEpsilon is the single-precision machine epsilon used to
// reject a near-parallel ray/triangle plane in the Möller-Trumbore test.
const triangleEpsilon = 1.1920929e-7

// hitTriangle runs the Möller-Trumbore ray/triangle test shared by both
// standalone triangles and BVH leaves. The active cull mode is the
// triangle's own mode in closest-hit mode, or its front/back-inverted
// mode in shadow mode.
func hitTriangle(r Ray, v0, v1, v2, normal math32.Vec3, cull CullMode, materialID int, hit *HitRecord, shadowMode bool) bool {
	active := cull
	if shadowMode {
		active = cull.invert()
	}

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return false
	}

	inv := 1 / det
	s := r.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return false
	}

	t := edge2.Dot(q) * inv
	if t < r.TMin || t >= r.TMax {
		return false
	}

	dDotN := r.Direction.Dot(normal)
	switch active {
	case CullBackFace:
		if dDotN > 0 {
			return false
		}
	case CullFrontFace:
		if dDotN < 0 {
			return false
		}
	}

	if shadowMode {
		return true
	}

	hit.T = t
	hit.Point = r.At(t)
	hit.Normal = normal
	hit.MaterialID = materialID
	hit.DidHit = true
	return true
}

// Hit intersects r against the triangle.
func (tr Triangle) Hit(r Ray, hit *HitRecord, shadowMode bool) bool {
	return hitTriangle(r, tr.V0, tr.V1, tr.V2, tr.Normal, tr.CullMode, tr.MaterialID, hit, shadowMode)
}
