package math

import "math"

// Mat4 is a row-major 4x4 matrix. For the affine transforms used
// throughout this package, row 3 holds the translation and rows 0-2
// hold the right/up/forward basis vectors in their first three
// columns, matching the row-vector * matrix convention used by
// Vec4.MulMat.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// TransformPoint applies the full affine transform, including translation.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	v4 := v.ToVec4(1.0)
	return m.MulVec(v4).ToVec3DivW()
}

// TransformVector applies only the linear part of the transform, skipping
// the translation row — used for directions and normals.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	v4 := v.ToVec4(0.0)
	result := m.MulVec(v4)
	return Vec3{X: result.X, Y: result.Y, Z: result.Z}
}

// MulVec3 is an alias of TransformPoint kept for call sites that treat
// every Vec3 as a position.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.TransformPoint(v)
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Mat4Affine builds an affine transform directly from its basis vectors,
// matching the camera-to-world layout used by the camera model:
// [right | up | forward | translation].
func Mat4Affine(right, up, forward, translation Vec3) Mat4 {
	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{up.X, up.Y, up.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{translation.X, translation.Y, translation.Z, 1},
	}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationAxis builds a rotation about an arbitrary unit axis
// (Rodrigues' rotation formula).
func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0},
		{t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0},
		{t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4Rotation builds a rotation from Euler angles (yaw, pitch, roll in
// Y, X, Z order), matching the teacher's composition order.
func Mat4Rotation(euler Vec3) Mat4 {
	return Mat4RotationY(euler.Y).Mul(Mat4RotationX(euler.X)).Mul(Mat4RotationZ(euler.Z))
}

// Mat4TRS composes a translate * rotate * scale affine transform, the
// order TriangleMesh.UpdateTransforms uses for mesh-local to world space.
func Mat4TRS(translation, euler, scale Vec3) Mat4 {
	return Mat4Scale(scale).Mul(Mat4Rotation(euler)).Mul(Mat4Translation(translation))
}
