// Package meshio loads triangle soup from external file formats into
// the flat positions/indices arrays geometry.NewTriangleMesh expects,
// plus optional per-vertex normals. Unlike a general asset pipeline it never deduplicates
// vertices or builds a scene graph: every face corner becomes its own
// slot, one per corner, matching the parallel-arrays layout the BVH
// builder partitions in place.
package meshio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// Mesh is the flat, loader-independent result every meshio function
// returns: one corner per face vertex, normals optional.
type Mesh struct {
	Positions []math32.Vec3
	Indices   []int
	Normals   []math32.Vec3
}

// LoadOBJ parses a Wavefront .obj file. It only understands "v", "vn"
// and "f" lines; "f" accepts the bare, "v/vt" and "v/vt/vn" forms and
// triangulates n-gons as a fan, same as a single mesh group would.
// Vertex normals are populated only if every "v/vt/vn" face vertex
// supplied one; a mix of with- and without-normal corners is treated
// as no normals at all, since partial normals are nonsensical for a
// flat per-corner layout.
func LoadOBJ(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	defer f.Close()

	var positions []math32.Vec3
	var vertexNormals []math32.Vec3

	var outPositions []math32.Vec3
	var outNormals []math32.Vec3
	var indices []int
	haveAnyNormal := false
	haveAllNormals := true

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return Mesh{}, fmt.Errorf("meshio: %s: malformed v line %q", path, line)
			}
			v, err := parseVec3(parts[1], parts[2], parts[3])
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: %s: %w", path, err)
			}
			positions = append(positions, v)

		case "vn":
			if len(parts) < 4 {
				return Mesh{}, fmt.Errorf("meshio: %s: malformed vn line %q", path, line)
			}
			v, err := parseVec3(parts[1], parts[2], parts[3])
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: %s: %w", path, err)
			}
			vertexNormals = append(vertexNormals, v)

		case "f":
			corners := parts[1:]
			if len(corners) < 3 {
				return Mesh{}, fmt.Errorf("meshio: %s: face with fewer than 3 vertices %q", path, line)
			}
			faceSlots := make([]int, 0, len(corners))
			for _, corner := range corners {
				posIdx, normIdx, hasNorm, err := parseFaceCorner(corner, len(positions), len(vertexNormals))
				if err != nil {
					return Mesh{}, fmt.Errorf("meshio: %s: %w", path, err)
				}
				slot := len(outPositions)
				outPositions = append(outPositions, positions[posIdx])
				if hasNorm {
					outNormals = append(outNormals, vertexNormals[normIdx])
					haveAnyNormal = true
				} else {
					outNormals = append(outNormals, math32.Vec3{})
					haveAllNormals = false
				}
				faceSlots = append(faceSlots, slot)
			}
			for i := 2; i < len(faceSlots); i++ {
				indices = append(indices, faceSlots[0], faceSlots[i-1], faceSlots[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Mesh{}, fmt.Errorf("meshio: %s: %w", path, err)
	}
	if len(indices) == 0 {
		return Mesh{}, fmt.Errorf("meshio: %s: no faces found", path)
	}

	mesh := Mesh{Positions: outPositions, Indices: indices}
	if haveAnyNormal && haveAllNormals {
		mesh.Normals = outNormals
	}
	return mesh, nil
}

func parseVec3(xs, ys, zs string) (math32.Vec3, error) {
	x, err := strconv.ParseFloat(xs, 32)
	if err != nil {
		return math32.Vec3{}, fmt.Errorf("bad float %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 32)
	if err != nil {
		return math32.Vec3{}, fmt.Errorf("bad float %q: %w", ys, err)
	}
	z, err := strconv.ParseFloat(zs, 32)
	if err != nil {
		return math32.Vec3{}, fmt.Errorf("bad float %q: %w", zs, err)
	}
	return math32.NewVec3(float32(x), float32(y), float32(z)), nil
}

// parseFaceCorner resolves a "v", "v/vt" or "v/vt/vn" face spec into
// zero-based position and normal indices, honoring negative
// (relative-to-end) indices the same way the format allows.
func parseFaceCorner(spec string, posCount, normCount int) (posIdx, normIdx int, hasNorm bool, err error) {
	fields := strings.Split(spec, "/")
	if len(fields) == 0 || fields[0] == "" {
		return 0, 0, false, fmt.Errorf("face vertex %q missing position index", spec)
	}

	posIdx, err = resolveIndex(fields[0], posCount)
	if err != nil {
		return 0, 0, false, fmt.Errorf("face vertex %q: %w", spec, err)
	}

	if len(fields) >= 3 && fields[2] != "" {
		normIdx, err = resolveIndex(fields[2], normCount)
		if err != nil {
			return 0, 0, false, fmt.Errorf("face vertex %q: %w", spec, err)
		}
		hasNorm = true
	}
	return posIdx, normIdx, hasNorm, nil
}

func resolveIndex(raw string, count int) (int, error) {
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", raw, err)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx < 1 || idx > count {
		return 0, fmt.Errorf("index %d out of range [1,%d]", idx, count)
	}
	return idx - 1, nil
}
