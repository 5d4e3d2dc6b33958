package scene

import (
	"math"
	"testing"

	"github.com/mrigankad/bvhtracer/geometry"
	"github.com/mrigankad/bvhtracer/lighting"
	math32 "github.com/mrigankad/bvhtracer/math"
	"github.com/mrigankad/bvhtracer/shading"
)

type solidStub struct{ color math32.ColorRGB }

func (s solidStub) Shade(hit geometry.HitRecord, lightDir, viewDir math32.Vec3) math32.ColorRGB {
	return s.color
}

func TestGetClosestHitPicksNearerSphere(t *testing.T) {
	s := NewScene()
	nearID := s.AddMaterial(solidStub{color: math32.ColorRed})
	farID := s.AddMaterial(solidStub{color: math32.ColorBlue})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 10), Radius: 1, MaterialID: farID})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 5), Radius: 1, MaterialID: nearID})

	ray := geometry.NewRay(math32.Vec3Zero, math32.NewVec3(0, 0, 1), float32(math.MaxFloat32))
	hit := s.GetClosestHit(ray)
	if !hit.DidHit {
		t.Fatal("expected a hit")
	}
	if hit.MaterialID != nearID {
		t.Errorf("expected the closer sphere's material id %d, got %d", nearID, hit.MaterialID)
	}
}

func TestDoesHitShortCircuitsWithoutRecordingClosest(t *testing.T) {
	s := NewScene()
	id := s.AddMaterial(solidStub{})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 5), Radius: 1, MaterialID: id})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 50), Radius: 1, MaterialID: id})

	ray := geometry.NewRay(math32.Vec3Zero, math32.NewVec3(0, 0, 1), float32(math.MaxFloat32))
	if !s.DoesHit(ray) {
		t.Error("expected DoesHit to report a shadow-ray intersection")
	}
}

func TestMaterialOutOfRangeReturnsFalse(t *testing.T) {
	s := NewScene()
	if _, ok := s.Material(0); ok {
		t.Error("expected Material to report false for an empty material list")
	}
	s.AddMaterial(solidStub{})
	if _, ok := s.Material(5); ok {
		t.Error("expected Material to report false for an out-of-range id")
	}
}

func TestEmptySceneMisses(t *testing.T) {
	s := NewScene()
	ray := geometry.NewRay(math32.Vec3Zero, math32.NewVec3(0, 0, 1), float32(math.MaxFloat32))
	hit := s.GetClosestHit(ray)
	if hit.DidHit {
		t.Error("expected an empty scene to report no hit")
	}
	if s.DoesHit(ray) {
		t.Error("expected an empty scene to report no shadow hit")
	}
}

func TestSceneShadesThroughPipelineAgainstRegisteredLights(t *testing.T) {
	s := NewScene()
	id := s.AddMaterial(solidStub{color: math32.NewColorRGB(0.5, 0.5, 0.5)})
	s.AddSphere(geometry.Sphere{Origin: math32.NewVec3(0, 0, 5), Radius: 1, MaterialID: id})
	s.AddLight(lighting.NewDirectionalLight(math32.NewVec3(0, 0, 1), math32.ColorWhite, 1))

	ray := geometry.NewRay(math32.Vec3Zero, math32.NewVec3(0, 0, 1), float32(math.MaxFloat32))
	hit := s.GetClosestHit(ray)
	mat, ok := s.Material(hit.MaterialID)
	if !ok {
		t.Fatal("expected a registered material")
	}

	p := shading.Pipeline{Mode: shading.BRDF}
	color := p.Shade(hit, mat, math32.NewVec3(0, 0, -1), s.Lights, s)
	if color.R != 0.5 {
		t.Errorf("expected BRDF mode to just forward the material's Shade output, got %v", color.R)
	}
}
