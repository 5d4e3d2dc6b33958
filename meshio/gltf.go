package meshio

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// LoadGLTF opens a .glb or .gltf file and flattens every mesh
// primitive's POSITION/NORMAL/indices accessors into one combined
// triangle soup, offsetting each primitive's indices by the running
// vertex count so the result addresses a single Positions array.
// Materials, textures and the node hierarchy are out of scope here;
// scenefile is where a loaded mesh gets a transform and a material id.
func LoadGLTF(path string) (Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("meshio: open %s: %w", path, err)
	}

	var out Mesh
	haveAnyNormal := false
	haveAllNormals := true

	for _, gm := range doc.Meshes {
		for primIdx, prim := range gm.Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				return Mesh{}, fmt.Errorf("meshio: %s: mesh %q primitive %d has no POSITION attribute", path, gm.Name, primIdx)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: %s: positions: %w", path, err)
			}

			var normals [][3]float32
			if idx, ok := prim.Attributes["NORMAL"]; ok {
				normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
				if err != nil {
					return Mesh{}, fmt.Errorf("meshio: %s: normals: %w", path, err)
				}
			}

			if prim.Indices == nil {
				return Mesh{}, fmt.Errorf("meshio: %s: mesh %q primitive %d has no index accessor", path, gm.Name, primIdx)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: %s: indices: %w", path, err)
			}

			base := len(out.Positions)
			for _, p := range positions {
				out.Positions = append(out.Positions, math32.NewVec3(p[0], p[1], p[2]))
			}
			if len(normals) == len(positions) {
				haveAnyNormal = true
				for _, n := range normals {
					out.Normals = append(out.Normals, math32.NewVec3(n[0], n[1], n[2]))
				}
			} else {
				haveAllNormals = false
				for range positions {
					out.Normals = append(out.Normals, math32.Vec3{})
				}
			}
			for _, idx := range indices {
				out.Indices = append(out.Indices, base+int(idx))
			}
		}
	}

	if len(out.Indices) == 0 {
		return Mesh{}, fmt.Errorf("meshio: %s: no indexed triangle data found", path)
	}
	if !(haveAnyNormal && haveAllNormals) {
		out.Normals = nil
	}
	return out, nil
}
