// Package materials supplies concrete shade implementations behind
// the shading.Material capability: a flat-color Solid, Lambertian
// diffuse, Lambert+Phong, and a physically based Cook-Torrance variant.
//
// Per the design note on polymorphic materials, this is one tagged
// struct with a single Shade dispatcher rather than four interface
// implementations, so BVH traversal never touches materials and the
// variant is picked by a switch. The shading pipeline still calls
// Shade through the shading.Material interface.
package materials

import (
	"github.com/mrigankad/bvhtracer/geometry"
	math32 "github.com/mrigankad/bvhtracer/math"
	"github.com/mrigankad/bvhtracer/shading"
)

// Kind selects which BRDF model a Material evaluates.
type Kind int

const (
	Solid Kind = iota
	Lambert
	LambertPhong
	CookTorrance
)

// Material is the tagged variant backing shading.Material. Only the
// fields relevant to Kind are read by Shade; the rest are ignored.
type Material struct {
	Name string
	Kind Kind

	DiffuseColor math32.ColorRGB

	// Lambert / LambertPhong
	DiffuseReflectance  float32
	SpecularReflectance float32
	Shininess           float32

	// CookTorrance
	Roughness float32
	Metalness float32
}

// Shade implements shading.Material.
func (m Material) Shade(hit geometry.HitRecord, lightDir, viewDir math32.Vec3) math32.ColorRGB {
	switch m.Kind {
	case Solid:
		return m.DiffuseColor

	case Lambert:
		return shading.Lambert(m.DiffuseReflectance, m.DiffuseColor)

	case LambertPhong:
		diffuse := shading.Lambert(m.DiffuseReflectance, m.DiffuseColor)
		specular := shading.Phong(m.SpecularReflectance, m.Shininess, lightDir, viewDir, hit.Normal)
		return diffuse.Add(specular)

	case CookTorrance:
		return m.shadeCookTorrance(hit, lightDir, viewDir)

	default:
		return math32.ColorBlack
	}
}

func (m Material) shadeCookTorrance(hit geometry.HitRecord, lightDir, viewDir math32.Vec3) math32.ColorRGB {
	n := hit.Normal
	// viewDir points from the surface toward the eye; half-vector
	// bisects it with the incoming light direction.
	h := lightDir.Add(viewDir).Normalize()

	f0 := math32.NewColorRGB(0.04, 0.04, 0.04)
	if m.Metalness > 0 {
		f0 = f0.Add(m.DiffuseColor.Sub(f0).Scale(m.Metalness))
	}

	fresnel := shading.FresnelSchlick(h, viewDir, f0)
	distribution := shading.NormalDistributionGGX(n, h, m.Roughness)
	geometryTerm := shading.GeometrySmith(n, viewDir, lightDir, m.Roughness)

	nDotV := n.Dot(viewDir)
	nDotL := n.Dot(lightDir)
	denom := 4 * nDotV * nDotL
	if denom <= 0 {
		denom = 1e-4
	}
	specular := fresnel.Scale(distribution * geometryTerm / denom)

	kd := math32.ColorWhite.Sub(fresnel)
	if m.Metalness > 0 {
		kd = kd.Scale(1 - m.Metalness)
	}
	diffuse := kd.Mul(m.DiffuseColor).Scale(1 / piF32)

	return diffuse.Add(specular)
}

const piF32 = 3.14159265

// --- Default material library ---

func NewSolid(color math32.ColorRGB) Material {
	return Material{Name: "Solid", Kind: Solid, DiffuseColor: color}
}

func NewLambert(color math32.ColorRGB, diffuseReflectance float32) Material {
	return Material{Name: "Lambert", Kind: Lambert, DiffuseColor: color, DiffuseReflectance: diffuseReflectance}
}

func NewLambertPhong(color math32.ColorRGB, diffuseReflectance, specularReflectance, shininess float32) Material {
	return Material{
		Name: "LambertPhong", Kind: LambertPhong,
		DiffuseColor:        color,
		DiffuseReflectance:  diffuseReflectance,
		SpecularReflectance: specularReflectance,
		Shininess:           shininess,
	}
}

func NewCookTorrance(color math32.ColorRGB, roughness, metalness float32) Material {
	return Material{Name: "CookTorrance", Kind: CookTorrance, DiffuseColor: color, Roughness: roughness, Metalness: metalness}
}
