package frame

import (
	"testing"

	"github.com/mrigankad/bvhtracer/camera"
	"github.com/mrigankad/bvhtracer/geometry"
	"github.com/mrigankad/bvhtracer/lighting"
	math32 "github.com/mrigankad/bvhtracer/math"
	"github.com/mrigankad/bvhtracer/scene"
	"github.com/mrigankad/bvhtracer/shading"
)

type solidStub struct{ color math32.ColorRGB }

func (s solidStub) Shade(hit geometry.HitRecord, lightDir, viewDir math32.Vec3) math32.ColorRGB {
	return s.color
}

func mapRGBTestPacking(r, g, b uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

func testScene() *scene.Scene {
	s := scene.NewScene()
	id := s.AddMaterial(solidStub{color: math32.NewColorRGB(1, 1, 1)})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 5), Radius: 1.5, MaterialID: id})
	s.AddLight(lighting.NewDirectionalLight(math32.NewVec3(0, 0, 1), math32.ColorWhite, 1))
	return s
}

func TestRenderIsDeterministicAcrossWorkerCounts(t *testing.T) {
	scn := testScene()
	cam := camera.New(math32.Vec3Zero, 60)
	pipeline := shading.Pipeline{Mode: shading.ObservedArea}

	const w, h = 32, 24
	fb1 := NewFramebuffer(w, h, mapRGBTestPacking)
	Dispatcher{Pipeline: pipeline, Workers: 1}.Render(scn, cam, fb1)

	fb8 := NewFramebuffer(w, h, mapRGBTestPacking)
	Dispatcher{Pipeline: pipeline, Workers: 8}.Render(scn, cam, fb8)

	for i := range fb1.Pixels {
		if fb1.Pixels[i] != fb8.Pixels[i] {
			t.Fatalf("pixel %d differs between worker counts: %d vs %d", i, fb1.Pixels[i], fb8.Pixels[i])
		}
	}
}

func TestRenderHitsCenterSphere(t *testing.T) {
	scn := testScene()
	cam := camera.New(math32.Vec3Zero, 60)
	pipeline := shading.Pipeline{Mode: shading.ObservedArea}

	const w, h = 16, 16
	fb := NewFramebuffer(w, h, mapRGBTestPacking)
	Dispatcher{Pipeline: pipeline, Workers: 2}.Render(scn, cam, fb)

	center := fb.Pixels[(h/2)*w+w/2]
	if center == 0 {
		t.Error("expected the center pixel to hit the sphere and be non-black")
	}
}

func TestRenderMissesEverythingIsBlack(t *testing.T) {
	scn := scene.NewScene()
	cam := camera.New(math32.Vec3Zero, 60)
	pipeline := shading.Pipeline{Mode: shading.ObservedArea}

	fb := NewFramebuffer(8, 8, mapRGBTestPacking)
	Dispatcher{Pipeline: pipeline, Workers: 1}.Render(scn, cam, fb)

	for i, p := range fb.Pixels {
		if p != 0 {
			t.Errorf("pixel %d = %d, want 0 (black) for an empty scene", i, p)
		}
	}
}
