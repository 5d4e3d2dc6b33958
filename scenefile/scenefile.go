// Package scenefile loads a .rtscene JSON description into a ready-to
// -render scene.Scene, camera.Camera and shading.Pipeline, the same
// role io/scene_io.go's .gorscene format played for the node-graph
// renderer: a flat, versioned, round-trippable snapshot of everything
// a frame needs.
package scenefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrigankad/bvhtracer/camera"
	"github.com/mrigankad/bvhtracer/geometry"
	"github.com/mrigankad/bvhtracer/lighting"
	math32 "github.com/mrigankad/bvhtracer/math"
	"github.com/mrigankad/bvhtracer/materials"
	"github.com/mrigankad/bvhtracer/meshio"
	"github.com/mrigankad/bvhtracer/scene"
	"github.com/mrigankad/bvhtracer/shading"
)

// SceneFile is the top-level structure of the .rtscene format.
type SceneFile struct {
	Version   string          `json:"version"`
	Name      string          `json:"name"`
	Camera    CameraData      `json:"camera"`
	Materials []MaterialData  `json:"materials"`
	Lights    []LightData     `json:"lights"`
	Objects   []ObjectData    `json:"objects"`
	Settings  RenderSettings  `json:"settings"`
}

// CameraData describes the pinhole camera's initial pose.
type CameraData struct {
	Origin [3]float32 `json:"origin"`
	Yaw    float32    `json:"yaw"`
	Pitch  float32    `json:"pitch"`
	FOV    float32    `json:"fov"`
}

// MaterialData is one named material entry; objects reference
// materials by Name, not by index, so object order and material order
// can evolve independently.
type MaterialData struct {
	Name                string     `json:"name"`
	Kind                string     `json:"kind"` // solid, lambert, lambert_phong, cook_torrance
	DiffuseColor        [3]float32 `json:"diffuse_color"`
	DiffuseReflectance  float32    `json:"diffuse_reflectance,omitempty"`
	SpecularReflectance float32    `json:"specular_reflectance,omitempty"`
	Shininess           float32    `json:"shininess,omitempty"`
	Roughness           float32    `json:"roughness,omitempty"`
	Metalness           float32    `json:"metalness,omitempty"`
}

// LightData is one point or directional light.
type LightData struct {
	Type      string     `json:"type"` // point, directional
	Origin    [3]float32 `json:"origin,omitempty"`
	Direction [3]float32 `json:"direction,omitempty"`
	Color     [3]float32 `json:"color"`
	Intensity float32    `json:"intensity"`
}

// ObjectData is one scene primitive: a sphere, a plane, or a mesh
// loaded from an external file.
type ObjectData struct {
	Type     string `json:"type"` // sphere, plane, mesh
	Material string `json:"material"`

	// sphere
	Center [3]float32 `json:"center,omitempty"`
	Radius float32    `json:"radius,omitempty"`

	// plane
	Point  [3]float32 `json:"point,omitempty"`
	Normal [3]float32 `json:"normal,omitempty"`

	// mesh
	MeshFile    string     `json:"mesh_file,omitempty"`
	Translation [3]float32 `json:"translation,omitempty"`
	Rotation    [3]float32 `json:"rotation,omitempty"` // Euler radians
	Scale       [3]float32 `json:"scale,omitempty"`
	CullMode    string     `json:"cull_mode,omitempty"` // none, front, back
}

// RenderSettings carries the frame dispatcher and shading pipeline
// configuration: everything that isn't geometry, lights or materials.
type RenderSettings struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Mode           string `json:"mode"` // observed_area, radiance, brdf, combined
	ShadowsEnabled bool   `json:"shadows_enabled"`
	Workers        int    `json:"workers,omitempty"`
}

// Loaded is everything Load produces: a scene ready to trace, a
// camera positioned per the file, the render settings the file
// requested, and the shading pipeline those settings describe.
type Loaded struct {
	Scene    *scene.Scene
	Camera   *camera.Camera
	Settings RenderSettings
	Pipeline shading.Pipeline
}

// Save writes sf as indented JSON.
func Save(path string, sf *SceneFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("scenefile: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a .rtscene file and builds everything needed to render
// it: mesh files named by Objects are resolved relative to the scene
// file's own directory, not the process's working directory.
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}

	var sf SceneFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}

	scn := scene.NewScene()
	materialIDs := make(map[string]int, len(sf.Materials))
	for _, md := range sf.Materials {
		mat, err := buildMaterial(md)
		if err != nil {
			return nil, fmt.Errorf("scenefile: %s: material %q: %w", path, md.Name, err)
		}
		materialIDs[md.Name] = scn.AddMaterial(mat)
	}

	for _, ld := range sf.Lights {
		light, err := buildLight(ld)
		if err != nil {
			return nil, fmt.Errorf("scenefile: %s: light: %w", path, err)
		}
		scn.AddLight(light)
	}

	baseDir := filepath.Dir(path)
	for i, od := range sf.Objects {
		materialID, ok := materialIDs[od.Material]
		if !ok {
			return nil, fmt.Errorf("scenefile: %s: object %d references unknown material %q", path, i, od.Material)
		}
		if err := addObject(scn, baseDir, od, materialID); err != nil {
			return nil, fmt.Errorf("scenefile: %s: object %d: %w", path, i, err)
		}
	}

	cam := camera.New(toVec3(sf.Camera.Origin), sf.Camera.FOV)
	cam.Yaw = sf.Camera.Yaw
	cam.Pitch = sf.Camera.Pitch
	cam.UpdateBasis()

	pipeline, err := buildPipeline(sf.Settings)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: settings: %w", path, err)
	}

	return &Loaded{Scene: scn, Camera: cam, Settings: sf.Settings, Pipeline: pipeline}, nil
}

func buildMaterial(md MaterialData) (materials.Material, error) {
	color := toColor(md.DiffuseColor)
	switch strings.ToLower(md.Kind) {
	case "solid":
		return materials.NewSolid(color), nil
	case "lambert":
		return materials.NewLambert(color, md.DiffuseReflectance), nil
	case "lambert_phong":
		return materials.NewLambertPhong(color, md.DiffuseReflectance, md.SpecularReflectance, md.Shininess), nil
	case "cook_torrance":
		return materials.NewCookTorrance(color, md.Roughness, md.Metalness), nil
	default:
		return materials.Material{}, fmt.Errorf("unknown kind %q", md.Kind)
	}
}

func buildLight(ld LightData) (lighting.Light, error) {
	color := toColor(ld.Color)
	switch strings.ToLower(ld.Type) {
	case "point":
		return lighting.NewPointLight(toVec3(ld.Origin), color, ld.Intensity), nil
	case "directional":
		return lighting.NewDirectionalLight(toVec3(ld.Direction), color, ld.Intensity), nil
	default:
		return lighting.Light{}, fmt.Errorf("unknown type %q", ld.Type)
	}
}

func addObject(scn *scene.Scene, baseDir string, od ObjectData, materialID int) error {
	switch strings.ToLower(od.Type) {
	case "sphere":
		scn.AddSphere(geometry.Sphere{Origin: toVec3(od.Center), Radius: od.Radius, MaterialID: materialID})
		return nil

	case "plane":
		scn.AddPlane(geometry.Plane{Origin: toVec3(od.Point), Normal: toVec3(od.Normal).Normalize(), MaterialID: materialID})
		return nil

	case "mesh":
		if od.MeshFile == "" {
			return fmt.Errorf("mesh object missing mesh_file")
		}
		loaded, err := loadMeshFile(filepath.Join(baseDir, od.MeshFile))
		if err != nil {
			return err
		}
		cull, err := parseCullMode(od.CullMode)
		if err != nil {
			return err
		}

		var mesh *geometry.TriangleMesh
		if loaded.Normals != nil {
			// meshio normals are per vertex; the mesh takes one per triangle.
			faceNormals := make([]math32.Vec3, len(loaded.Indices)/3)
			for k := range faceNormals {
				var sum math32.Vec3
				for c := 0; c < 3; c++ {
					if idx := loaded.Indices[3*k+c]; idx >= 0 && idx < len(loaded.Normals) {
						sum = sum.Add(loaded.Normals[idx])
					}
				}
				faceNormals[k] = sum.Normalize()
			}
			mesh, err = geometry.NewTriangleMeshWithNormals(loaded.Positions, loaded.Indices, faceNormals, cull, materialID)
		} else {
			mesh, err = geometry.NewTriangleMesh(loaded.Positions, loaded.Indices, cull, materialID)
		}
		if err != nil {
			return fmt.Errorf("building mesh: %w", err)
		}

		scale := od.Scale
		if scale == ([3]float32{}) {
			scale = [3]float32{1, 1, 1}
		}
		mesh.Translation = toVec3(od.Translation)
		mesh.Rotation = toVec3(od.Rotation)
		mesh.Scale = toVec3(scale)
		mesh.UpdateTransforms()

		scn.AddMesh(mesh)
		return nil

	default:
		return fmt.Errorf("unknown object type %q", od.Type)
	}
}

func loadMeshFile(path string) (meshio.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return meshio.LoadOBJ(path)
	case ".gltf", ".glb":
		return meshio.LoadGLTF(path)
	default:
		return meshio.Mesh{}, fmt.Errorf("unrecognized mesh file extension %q", filepath.Ext(path))
	}
}

func parseCullMode(s string) (geometry.CullMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return geometry.CullNone, nil
	case "front":
		return geometry.CullFrontFace, nil
	case "back":
		return geometry.CullBackFace, nil
	default:
		return geometry.CullNone, fmt.Errorf("unknown cull_mode %q", s)
	}
}

func buildPipeline(rs RenderSettings) (shading.Pipeline, error) {
	mode, err := parseMode(rs.Mode)
	if err != nil {
		return shading.Pipeline{}, err
	}
	return shading.Pipeline{Mode: mode, ShadowsEnabled: rs.ShadowsEnabled}, nil
}

func parseMode(s string) (shading.Mode, error) {
	switch strings.ToLower(s) {
	case "observed_area":
		return shading.ObservedArea, nil
	case "radiance":
		return shading.Radiance, nil
	case "brdf":
		return shading.BRDF, nil
	case "combined":
		return shading.Combined, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func toVec3(a [3]float32) math32.Vec3 { return math32.NewVec3(a[0], a[1], a[2]) }
func toColor(a [3]float32) math32.ColorRGB { return math32.NewColorRGB(a[0], a[1], a[2]) }
