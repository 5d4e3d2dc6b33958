package materials

import (
	"math"
	"testing"

	"github.com/mrigankad/bvhtracer/geometry"
	math32 "github.com/mrigankad/bvhtracer/math"
)

func flatHit() geometry.HitRecord {
	return geometry.HitRecord{Normal: math32.NewVec3(0, 1, 0), DidHit: true}
}

func TestSolidIgnoresLightAndViewDirections(t *testing.T) {
	m := NewSolid(math32.NewColorRGB(0.2, 0.4, 0.6))
	c := m.Shade(flatHit(), math32.NewVec3(1, 0, 0), math32.NewVec3(0, 1, 0))
	if c.R != 0.2 || c.G != 0.4 || c.B != 0.6 {
		t.Errorf("Solid.Shade = %+v, want the material's diffuse color unchanged", c)
	}
}

func TestLambertScalesDiffuseByReflectanceOverPi(t *testing.T) {
	m := NewLambert(math32.ColorWhite, 1)
	c := m.Shade(flatHit(), math32.NewVec3(0, 1, 0), math32.NewVec3(0, 1, 0))
	want := float32(1 / math.Pi)
	if math.Abs(float64(c.R-want)) > 1e-5 {
		t.Errorf("Lambert.Shade = %v, want %v", c.R, want)
	}
}

func TestLambertPhongAddsSpecularOnTopOfDiffuse(t *testing.T) {
	diffuseOnly := NewLambert(math32.ColorWhite, 1)
	combined := NewLambertPhong(math32.ColorWhite, 1, 1, 32)

	n := math32.NewVec3(0, 1, 0)
	l := math32.NewVec3(0, 1, 0)
	v := math32.NewVec3(0, 1, 0)
	hit := geometry.HitRecord{Normal: n, DidHit: true}

	d := diffuseOnly.Shade(hit, l, v)
	c := combined.Shade(hit, l, v)
	if c.R <= d.R {
		t.Errorf("expected LambertPhong to add a positive specular term at the perfect reflection angle, diffuse=%v combined=%v", d.R, c.R)
	}
}

func TestCookTorranceStaysFiniteAndNonNegative(t *testing.T) {
	m := NewCookTorrance(math32.NewColorRGB(0.8, 0.2, 0.2), 0.5, 0.0)
	n := math32.NewVec3(0, 1, 0)
	l := math32.NewVec3(0.3, 0.8, 0).Normalize()
	v := math32.NewVec3(-0.2, 0.9, 0.1).Normalize()
	hit := geometry.HitRecord{Normal: n, DidHit: true}

	c := m.Shade(hit, l, v)
	for _, ch := range []float32{c.R, c.G, c.B} {
		if math.IsNaN(float64(ch)) || math.IsInf(float64(ch), 0) {
			t.Fatalf("Cook-Torrance channel is non-finite: %v", ch)
		}
		if ch < 0 {
			t.Errorf("Cook-Torrance channel is negative: %v", ch)
		}
	}
}

func TestCookTorranceMetalTintsSpecularByAlbedo(t *testing.T) {
	n := math32.NewVec3(0, 1, 0)
	l := math32.NewVec3(0.3, 0.8, 0).Normalize()
	v := math32.NewVec3(-0.2, 0.9, 0.1).Normalize()
	hit := geometry.HitRecord{Normal: n, DidHit: true}

	dielectric := NewCookTorrance(math32.NewColorRGB(0, 1, 0), 0.3, 0.0)
	metal := NewCookTorrance(math32.NewColorRGB(0, 1, 0), 0.3, 1.0)

	cd := dielectric.Shade(hit, l, v)
	cm := metal.Shade(hit, l, v)
	// a fully metallic green surface should have negligible red/blue
	// contribution since f0 is tinted entirely by the albedo, while a
	// dielectric's achromatic f0 leaves some red/blue specular sheen.
	if cm.R > cd.R {
		t.Errorf("expected metal's red channel (%v) not to exceed the dielectric's (%v)", cm.R, cd.R)
	}
}
