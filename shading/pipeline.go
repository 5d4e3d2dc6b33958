package shading

import (
	"github.com/mrigankad/bvhtracer/geometry"
	"github.com/mrigankad/bvhtracer/lighting"
	math32 "github.com/mrigankad/bvhtracer/math"
)

// Material is the capability the core depends on: given a hit and the
// light/view directions at that point, produce a color. Concrete
// variants (Solid, Lambert, LambertPhong, CookTorrance) live in the
// materials package; the core only ever sees this interface.
type Material interface {
	Shade(hit geometry.HitRecord, lightDir, viewDir math32.Vec3) math32.ColorRGB
}

// Mode selects which per-light contribution the pipeline computes.
type Mode int

const (
	ObservedArea Mode = iota
	Radiance
	BRDF
	Combined
)

// ShadowTester is satisfied by the scene database's shadow-mode query;
// kept as a narrow interface here so shading never imports scene.
type ShadowTester interface {
	DoesHit(r geometry.Ray) bool
}

// Pipeline combines observed-area, radiance and BRDF contributions
// across every light into a single pixel color, per §4.4.
type Pipeline struct {
	Mode           Mode
	ShadowsEnabled bool
}

// Shade loops over lights, issuing a shadow query per light when
// enabled, and sums each unshadowed light's contribution according to
// Mode.
func (p Pipeline) Shade(hit geometry.HitRecord, material Material, viewDir math32.Vec3, lights []lighting.Light, tester ShadowTester) math32.ColorRGB {
	normal := hit.Normal.Normalize()
	shadowOrigin := hit.Point.Add(normal.Mul(geometry.RayEpsilon))

	final := math32.ColorBlack
	for _, light := range lights {
		lightDir, distance := light.DirectionAndDistance(shadowOrigin)

		if p.ShadowsEnabled {
			shadowRay := geometry.NewRay(shadowOrigin, lightDir, distance)
			if tester.DoesHit(shadowRay) {
				continue
			}
		}

		nDotL := normal.Dot(lightDir)
		if nDotL < 0 {
			nDotL = 0
		}

		var contribution math32.ColorRGB
		switch p.Mode {
		case ObservedArea:
			contribution = math32.NewColorRGB(nDotL, nDotL, nDotL)
		case Radiance:
			contribution = light.Radiance(shadowOrigin)
		case BRDF:
			contribution = material.Shade(hit, lightDir, viewDir)
		case Combined:
			radiance := light.Radiance(shadowOrigin)
			brdf := material.Shade(hit, lightDir, viewDir)
			contribution = radiance.Mul(brdf).Scale(nDotL)
		}

		final = final.Add(contribution)
	}

	return final.MaxToOne()
}
