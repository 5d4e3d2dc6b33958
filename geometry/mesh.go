package geometry

import (
	"errors"
	"fmt"
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// Errors returned by NewTriangleMesh when the input violates the data
// model's invariants. These are fatal at construction time; the scene
// is expected to reject the mesh and report, not to patch it up.
var (
	ErrIndexCountNotMultipleOfThree = errors.New("geometry: index count is not a multiple of 3")
	ErrNormalCountMismatch          = errors.New("geometry: normal count does not match triangle count")
	ErrIndexOutOfRange              = errors.New("geometry: index references a position outside the array")
	ErrNonFiniteVertex              = errors.New("geometry: vertex position is not finite")
)

// TriangleMesh owns a flattened triangle soup, its TRS transform, and
// the BVH built over its transformed positions. Positions, normals and
// indices are kept as parallel arrays (not an array of structs) so BVH
// traversal only touches the slices it needs; see mesh.go/bvh.go.
type TriangleMesh struct {
	Positions []math32.Vec3
	Normals   []math32.Vec3
	Indices   []int

	CullMode   CullMode
	MaterialID int

	Translation math32.Vec3
	Rotation    math32.Vec3 // Euler angles, radians
	Scale       math32.Vec3

	TransformedPositions []math32.Vec3
	TransformedNormals   []math32.Vec3

	nodes     []BVHNode
	nodesUsed int
	rootIndex int
}

// NewTriangleMesh validates positions/indices, derives a face normal
// per triangle from vertex winding, and performs the initial
// UpdateTransforms (with an identity TRS) which also builds the BVH.
func NewTriangleMesh(positions []math32.Vec3, indices []int, cullMode CullMode, materialID int) (*TriangleMesh, error) {
	return newTriangleMesh(positions, indices, nil, cullMode, materialID)
}

// NewTriangleMeshWithNormals is like NewTriangleMesh but accepts
// explicit per-triangle normals instead of deriving them from winding
// order (the path scenefile takes, after averaging a mesh file's
// per-vertex normals into one per triangle, when the file supplies
// its own normals).
func NewTriangleMeshWithNormals(positions []math32.Vec3, indices []int, normals []math32.Vec3, cullMode CullMode, materialID int) (*TriangleMesh, error) {
	return newTriangleMesh(positions, indices, normals, cullMode, materialID)
}

func newTriangleMesh(positions []math32.Vec3, indices []int, normals []math32.Vec3, cullMode CullMode, materialID int) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrIndexCountNotMultipleOfThree, len(indices))
	}

	for _, p := range positions {
		if !vec3Finite(p) {
			return nil, ErrNonFiniteVertex
		}
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return nil, fmt.Errorf("%w: index %d, %d positions", ErrIndexOutOfRange, idx, len(positions))
		}
	}

	triCount := len(indices) / 3

	m := &TriangleMesh{
		Positions:  positions,
		Indices:    indices,
		CullMode:   cullMode,
		MaterialID: materialID,
		Scale:      math32.NewVec3(1, 1, 1),
	}

	if normals != nil {
		if len(normals) != triCount {
			return nil, fmt.Errorf("%w: %d normals, %d triangles", ErrNormalCountMismatch, len(normals), triCount)
		}
		m.Normals = normals
	} else {
		m.Normals = computeFaceNormals(positions, indices)
	}

	// BVH node buffer: upper bound for a binary tree over triCount
	// leaves is 2*triCount-1, sized once and reused on every rebuild.
	if triCount > 0 {
		m.nodes = make([]BVHNode, 2*triCount-1)
	}

	m.UpdateTransforms()
	return m, nil
}

func vec3Finite(v math32.Vec3) bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0) &&
		!math.IsNaN(float64(v.Z)) && !math.IsInf(float64(v.Z), 0)
}

func computeFaceNormals(positions []math32.Vec3, indices []int) []math32.Vec3 {
	triCount := len(indices) / 3
	normals := make([]math32.Vec3, triCount)
	for k := 0; k < triCount; k++ {
		v0 := positions[indices[3*k]]
		v1 := positions[indices[3*k+1]]
		v2 := positions[indices[3*k+2]]
		normals[k] = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	}
	return normals
}

// UpdateTransforms recomposes the TRS transform, rewrites
// TransformedPositions/TransformedNormals from Positions/Normals, and
// rebuilds the BVH from scratch against the new transformed positions.
// No reader may observe a partially rebuilt tree: callers only see the
// result after this returns.
func (m *TriangleMesh) UpdateTransforms() {
	transform := math32.Mat4TRS(m.Translation, m.Rotation, m.Scale)

	if cap(m.TransformedPositions) < len(m.Positions) {
		m.TransformedPositions = make([]math32.Vec3, len(m.Positions))
	} else {
		m.TransformedPositions = m.TransformedPositions[:len(m.Positions)]
	}
	for i, p := range m.Positions {
		m.TransformedPositions[i] = transform.TransformPoint(p)
	}

	if cap(m.TransformedNormals) < len(m.Normals) {
		m.TransformedNormals = make([]math32.Vec3, len(m.Normals))
	} else {
		m.TransformedNormals = m.TransformedNormals[:len(m.Normals)]
	}
	for i, n := range m.Normals {
		m.TransformedNormals[i] = transform.TransformVector(n).Normalize()
	}

	m.nodesUsed = 1
	m.buildBVH()
}

// TriangleCount returns the number of triangles the mesh holds.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Hit intersects r against the mesh's BVH, returning the closest hit
// (or first hit, in shadow mode).
func (m *TriangleMesh) Hit(r Ray, hit *HitRecord, shadowMode bool) bool {
	if len(m.nodes) == 0 {
		return false
	}
	return m.intersectBVH(m.rootIndex, r, hit, shadowMode)
}
