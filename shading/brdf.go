// Package shading implements the material capability interface, the
// Cook-Torrance BRDF terms, and the per-light shading pipeline that
// combines observed area, radiance and BRDF into a final pixel color.
package shading

import (
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

const piF32 = float32(math.Pi)

// Lambert returns the Lambertian diffuse term cd*kd/pi.
func Lambert(kd float32, cd math32.ColorRGB) math32.ColorRGB {
	return cd.Scale(kd / piF32)
}

// Phong returns the Phong specular term for a perfectly mirrored
// reflection of l about n, raised to exp and scaled by ks.
func Phong(ks, exp float32, l, v, n math32.Vec3) math32.ColorRGB {
	reflect := n.Mul(2 * n.Dot(l)).Sub(l)
	angle := reflect.Dot(v)
	if angle < 0 {
		return math32.ColorBlack
	}
	return math32.ColorWhite.Scale(ks * float32(math.Pow(float64(angle), float64(exp))))
}

// FresnelSchlick is the Schlick approximation of the Fresnel term,
// f0 being the surface's base reflectivity at normal incidence.
func FresnelSchlick(h, v math32.Vec3, f0 math32.ColorRGB) math32.ColorRGB {
	factor := float32(math.Pow(float64(1-h.Dot(v)), 5))
	return f0.Add(math32.ColorWhite.Sub(f0).Scale(factor))
}

// NormalDistributionGGX is the Trowbridge-Reitz GGX normal
// distribution term D, using the UE4 squared-roughness convention.
func NormalDistributionGGX(n, h math32.Vec3, roughness float32) float32 {
	alpha := roughness * roughness
	alphaSqrd := alpha * alpha
	dot := n.Dot(h)
	dotSqrd := dot * dot
	denom := dotSqrd*(alphaSqrd-1) + 1
	return alphaSqrd / (piF32 * denom * denom)
}

// GeometrySchlickGGX is the direct-lighting Schlick-GGX geometry term G1.
func GeometrySchlickGGX(n, v math32.Vec3, roughness float32) float32 {
	alpha := roughness * roughness
	kDirect := (alpha + 1) * (alpha + 1) / 8
	nDotV := n.Dot(v)
	return nDotV / (nDotV*(1-kDirect) + kDirect)
}

// GeometrySmith is the combined Smith geometry term:
// G1(n,v)*G1(n,l).
func GeometrySmith(n, v, l math32.Vec3, roughness float32) float32 {
	return GeometrySchlickGGX(n, v, roughness) * GeometrySchlickGGX(n, l, roughness)
}
