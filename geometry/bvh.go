package geometry

import math32 "github.com/mrigankad/bvhtracer/math"

// BVHNode is one node of a mesh's bounding volume hierarchy. A node is
// a leaf iff TriCount > 0; an internal node always has two children at
// LeftChild and LeftChild+1.
type BVHNode struct {
	Min, Max      math32.Vec3
	LeftChild     int
	FirstTriIndex int
	TriCount      int
}

func (n BVHNode) isLeaf() bool {
	return n.TriCount > 0
}

func (n BVHNode) bounds() AABB {
	return AABB{Min: n.Min, Max: n.Max}
}

// binCount is N_BINS from the external interface: the number of
// centroid buckets the SAH split search bins triangles into.
const binCount = 8

// smallLeafThreshold is the index-slot count below which a node always
// becomes a leaf regardless of SAH cost. Matches the tutorial this
// design is drawn from; revisit for workloads with many small meshes.
const smallLeafThreshold = 8

type sahBin struct {
	bounds AABB
	count  int // index slots, not triangles
}

// buildBVH resets the node buffer and (re)builds the tree over the
// mesh's current TransformedPositions. Called by UpdateTransforms.
func (m *TriangleMesh) buildBVH() {
	if len(m.nodes) == 0 {
		return
	}

	root := &m.nodes[0]
	root.LeftChild = 0
	root.FirstTriIndex = 0
	root.TriCount = len(m.Indices)

	m.updateNodeBounds(0)
	m.subdivide(0)
}

func (m *TriangleMesh) updateNodeBounds(nodeIdx int) {
	node := &m.nodes[nodeIdx]
	box := EmptyAABB()
	for i := 0; i < node.TriCount; i++ {
		box.Grow(m.TransformedPositions[m.Indices[node.FirstTriIndex+i]])
	}
	node.Min = box.Min
	node.Max = box.Max
}

func triangleCentroid(m *TriangleMesh, firstSlot int) math32.Vec3 {
	v0 := m.TransformedPositions[m.Indices[firstSlot]]
	v1 := m.TransformedPositions[m.Indices[firstSlot+1]]
	v2 := m.TransformedPositions[m.Indices[firstSlot+2]]
	return v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
}

func nodeCost(node *BVHNode) float32 {
	extent := node.Max.Sub(node.Min)
	area := extent.X*extent.Y + extent.Y*extent.Z + extent.Z*extent.X
	return float32(node.TriCount) * area
}

// subdivide recursively splits nodeIdx using an SAH-binned search over
// the three axes, falling back to a leaf when tri_count is small or no
// split beats the no-split cost.
func (m *TriangleMesh) subdivide(nodeIdx int) {
	node := &m.nodes[nodeIdx]
	if node.TriCount <= smallLeafThreshold {
		return
	}

	axis, splitPos, splitCost := m.findBestSplitPlane(node)
	noSplitCost := nodeCost(node)
	if splitCost >= noSplitCost {
		return
	}

	// In-place partition of [first, first+triCount) into triangle
	// triples below/above splitPos on axis, keeping indices, normals
	// and transformedNormals permuted identically by slot/3.
	i := node.FirstTriIndex
	j := i + node.TriCount - 3
	for i <= j {
		centroid := triangleCentroid(m, i)
		if centroid.Get(axis) < splitPos {
			i += 3
			continue
		}
		swapTriangle(m, i, j)
		j -= 3
	}

	leftCount := i - node.FirstTriIndex
	if leftCount == 0 || leftCount == node.TriCount {
		return
	}

	leftIdx := m.nodesUsed
	rightIdx := m.nodesUsed + 1
	m.nodesUsed += 2

	m.nodes[leftIdx].FirstTriIndex = node.FirstTriIndex
	m.nodes[leftIdx].TriCount = leftCount
	m.nodes[rightIdx].FirstTriIndex = i
	m.nodes[rightIdx].TriCount = node.TriCount - leftCount

	// node may be invalidated by growth of m.nodes in theory, but the
	// buffer is sized once at construction and never reallocated, so
	// the pointer stays valid across the recursive calls below.
	node.LeftChild = leftIdx
	node.TriCount = 0

	m.updateNodeBounds(leftIdx)
	m.updateNodeBounds(rightIdx)

	m.subdivide(leftIdx)
	m.subdivide(rightIdx)
}

// swapTriangle exchanges the triangles occupying index slots starting
// at a and b (each a multiple of 3), along with their per-triangle
// normals, keeping Indices/Normals/TransformedNormals in lockstep.
func swapTriangle(m *TriangleMesh, a, b int) {
	if a == b {
		return
	}
	m.Indices[a], m.Indices[b] = m.Indices[b], m.Indices[a]
	m.Indices[a+1], m.Indices[b+1] = m.Indices[b+1], m.Indices[a+1]
	m.Indices[a+2], m.Indices[b+2] = m.Indices[b+2], m.Indices[a+2]

	ta, tb := a/3, b/3
	m.Normals[ta], m.Normals[tb] = m.Normals[tb], m.Normals[ta]
	m.TransformedNormals[ta], m.TransformedNormals[tb] = m.TransformedNormals[tb], m.TransformedNormals[ta]
}

// findBestSplitPlane searches all three axes for the cheapest SAH
// split, binning triangle centroids into binCount buckets per axis.
// Counts are slot-denominated throughout so they compare directly
// against nodeCost's tri_count*area.
func (m *TriangleMesh) findBestSplitPlane(node *BVHNode) (axis int, splitPos float32, bestCost float32) {
	bestCost = maxFloat32

	for currAxis := 0; currAxis < 3; currAxis++ {
		boundsMin := float32(maxFloat32)
		boundsMax := float32(-maxFloat32)

		for i := 0; i < node.TriCount; i += 3 {
			c := triangleCentroid(m, node.FirstTriIndex+i).Get(currAxis)
			if c < boundsMin {
				boundsMin = c
			}
			if c > boundsMax {
				boundsMax = c
			}
		}
		if boundsMin == boundsMax {
			continue
		}

		var bins [binCount]sahBin
		for i := range bins {
			bins[i].bounds = EmptyAABB()
		}
		scale := float32(binCount) / (boundsMax - boundsMin)

		for i := 0; i < node.TriCount; i += 3 {
			slot := node.FirstTriIndex + i
			v0 := m.TransformedPositions[m.Indices[slot]]
			v1 := m.TransformedPositions[m.Indices[slot+1]]
			v2 := m.TransformedPositions[m.Indices[slot+2]]
			centroid := v0.Add(v1).Add(v2).Mul(1.0 / 3.0)

			binIdx := int((centroid.Get(currAxis) - boundsMin) * scale)
			if binIdx < 0 {
				binIdx = 0
			}
			if binIdx > binCount-1 {
				binIdx = binCount - 1
			}

			bins[binIdx].count += 3
			bins[binIdx].bounds.Grow(v0)
			bins[binIdx].bounds.Grow(v1)
			bins[binIdx].bounds.Grow(v2)
		}

		var leftArea, rightArea [binCount - 1]float32
		var leftCount, rightCount [binCount - 1]int

		leftBox := EmptyAABB()
		rightBox := EmptyAABB()
		leftSum, rightSum := 0, 0
		for i := 0; i < binCount-1; i++ {
			leftSum += bins[i].count
			leftCount[i] = leftSum
			leftBox.GrowBox(bins[i].bounds)
			leftArea[i] = leftBox.Area()

			rightSum += bins[binCount-1-i].count
			rightCount[binCount-2-i] = rightSum
			rightBox.GrowBox(bins[binCount-1-i].bounds)
			rightArea[binCount-2-i] = rightBox.Area()
		}

		planeScale := (boundsMax - boundsMin) / binCount
		for i := 0; i < binCount-1; i++ {
			planeCost := float32(leftCount[i])*leftArea[i] + float32(rightCount[i])*rightArea[i]
			if planeCost < bestCost {
				axis = currAxis
				splitPos = boundsMin + planeScale*float32(i+1)
				bestCost = planeCost
			}
		}
	}

	return axis, splitPos, bestCost
}

// intersectBVH descends the tree iteratively (an explicit stack avoids
// unbounded recursion depth on large meshes). On a miss against a
// node's AABB the whole subtree is skipped; leaves run the triangle
// kernel over their index slots three at a time.
func (m *TriangleMesh) intersectBVH(rootIdx int, r Ray, hit *HitRecord, shadowMode bool) bool {
	stack := make([]int, 0, 64)
	stack = append(stack, rootIdx)
	didHit := false

	for len(stack) > 0 {
		nodeIdx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &m.nodes[nodeIdx]
		if !node.bounds().Hit(r) {
			continue
		}

		if !node.isLeaf() {
			stack = append(stack, node.LeftChild, node.LeftChild+1)
			continue
		}

		for i := 0; i < node.TriCount; i += 3 {
			slot := node.FirstTriIndex + i
			triIdx := slot / 3
			v0 := m.TransformedPositions[m.Indices[slot]]
			v1 := m.TransformedPositions[m.Indices[slot+1]]
			v2 := m.TransformedPositions[m.Indices[slot+2]]
			normal := m.TransformedNormals[triIdx]

			if hitTriangle(r, v0, v1, v2, normal, m.CullMode, m.MaterialID, hit, shadowMode) {
				if shadowMode {
					return true
				}
				didHit = true
				r.TMax = hit.T
			}
		}
	}

	return didHit
}
