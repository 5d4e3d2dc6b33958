// Package scene owns every piece of geometry, every light and every
// material a frame renders against, and exposes the two hit queries
// the shading pipeline and the BVH fan out through: closest-hit and
// shadow mode.
package scene

import (
	"github.com/mrigankad/bvhtracer/geometry"
	"github.com/mrigankad/bvhtracer/lighting"
	"github.com/mrigankad/bvhtracer/shading"
)

// Scene owns all geometry, lights and materials for its lifetime.
// During a frame it is logically immutable: every worker only reads
// from it. Between frames UpdateTransforms on individual meshes is the
// only mutation path, and it always leaves a fully-rebuilt BVH behind
// rather than a partial one.
type Scene struct {
	Spheres []geometry.Sphere
	Planes  []geometry.Plane
	Meshes  []*geometry.TriangleMesh

	Materials []shading.Material
	Lights    []lighting.Light
}

// NewScene returns an empty scene ready to have geometry appended.
func NewScene() *Scene {
	return &Scene{}
}

// AddMaterial appends a material and returns its id for use as a
// primitive's MaterialID.
func (s *Scene) AddMaterial(m shading.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l lighting.Light) {
	s.Lights = append(s.Lights, l)
}

// AddSphere appends a sphere primitive.
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Spheres = append(s.Spheres, sphere)
}

// AddPlane appends a plane primitive.
func (s *Scene) AddPlane(plane geometry.Plane) {
	s.Planes = append(s.Planes, plane)
}

// AddMesh takes ownership of mesh. It does not rebuild the BVH: the
// mesh is traversed with the tree its last UpdateTransforms built.
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) {
	s.Meshes = append(s.Meshes, mesh)
}

// Material looks up a material id, returning false if it is out of
// range (a malformed hit record referencing a material that was never
// registered).
func (s *Scene) Material(id int) (shading.Material, bool) {
	if id < 0 || id >= len(s.Materials) {
		return nil, false
	}
	return s.Materials[id], true
}

// GetClosestHit fans out to every sphere, plane and mesh, narrowing
// the ray's t_max as closer candidates are found, and returns the
// single closest hit across the whole scene.
func (s *Scene) GetClosestHit(r geometry.Ray) geometry.HitRecord {
	hit := geometry.NewHitRecord()
	ray := r

	for _, sphere := range s.Spheres {
		if sphere.Hit(ray, &hit, false) {
			ray.TMax = hit.T
		}
	}
	for _, plane := range s.Planes {
		if plane.Hit(ray, &hit, false) {
			ray.TMax = hit.T
		}
	}
	for _, mesh := range s.Meshes {
		if mesh.Hit(ray, &hit, false) {
			ray.TMax = hit.T
		}
	}

	return hit
}

// DoesHit is the shadow-mode query: it returns as soon as any
// primitive reports a hit within the ray's range, without recording
// which one or where.
func (s *Scene) DoesHit(r geometry.Ray) bool {
	var hit geometry.HitRecord

	for _, sphere := range s.Spheres {
		if sphere.Hit(r, &hit, true) {
			return true
		}
	}
	for _, plane := range s.Planes {
		if plane.Hit(r, &hit, true) {
			return true
		}
	}
	for _, mesh := range s.Meshes {
		if mesh.Hit(r, &hit, true) {
			return true
		}
	}

	return false
}
