package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	v := Vec3Zero
	result := v.Normalize()
	if result != Vec3Zero {
		t.Errorf("Normalize of zero vector should stay zero, got %v", result)
	}
}

func TestVec3NormalizeInPlace(t *testing.T) {
	v := NewVec3(0, 4, 0)
	priorLength := v.NormalizeInPlace()

	if priorLength != 4 {
		t.Errorf("NormalizeInPlace: expected prior length 4, got %v", priorLength)
	}
	if v != Vec3Up {
		t.Errorf("NormalizeInPlace: expected unit vector %v, got %v", Vec3Up, v)
	}

	zero := Vec3Zero
	priorLength = zero.NormalizeInPlace()
	if priorLength != 0 || zero != Vec3Zero {
		t.Errorf("NormalizeInPlace on zero vector must leave it unchanged and report length 0, got %v, %v", zero, priorLength)
	}
}

func TestVec3Reflect(t *testing.T) {
	incident := NewVec3(1, -1, 0)
	normal := Vec3Up
	reflected := incident.Reflect(normal)
	expected := NewVec3(1, 1, 0)

	if reflected != expected {
		t.Errorf("Reflect: expected %v, got %v", expected, reflected)
	}

	// Reflecting about any unit normal must preserve length within 1e-5.
	if math.Abs(float64(reflected.Length()-incident.Length())) > 1e-5 {
		t.Errorf("Reflect: expected length to be preserved, got %v vs %v", reflected.Length(), incident.Length())
	}
}

func TestVec3GetAxis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	if v.Get(0) != 1 || v.Get(1) != 2 || v.Get(2) != 3 {
		t.Errorf("Get: expected (1,2,3) indexed, got (%v,%v,%v)", v.Get(0), v.Get(1), v.Get(2))
	}
}

func TestVec3MinMax(t *testing.T) {
	a := NewVec3(1, 5, -2)
	b := NewVec3(3, 2, 4)

	min := Vec3Min(a, b)
	max := Vec3Max(a, b)

	if min != (NewVec3(1, 2, -2)) {
		t.Errorf("Vec3Min: expected (1,2,-2), got %v", min)
	}
	if max != (NewVec3(3, 5, 4)) {
		t.Errorf("Vec3Max: expected (3,5,4), got %v", max)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		if m[i][i] != 1 {
			t.Errorf("Identity: expected diagonal to be 1, got %v", m[i][i])
		}
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && m[i][j] != 0 {
				t.Errorf("Identity: expected non-diagonal to be 0, got %v", m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	result := m1.Mul(m2)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}

	result := m.TransformPoint(Vec3Zero)
	if result != translation {
		t.Errorf("TransformPoint: expected %v, got %v", translation, result)
	}
}

func TestMat4TransformVectorSkipsTranslation(t *testing.T) {
	m := Mat4Translation(NewVec3(5, 5, 5))
	dir := Vec3Right

	result := m.TransformVector(dir)
	if result != dir {
		t.Errorf("TransformVector: translation must not affect direction, expected %v, got %v", dir, result)
	}
}

func TestMat4Affine(t *testing.T) {
	m := Mat4Affine(Vec3Right, Vec3Up, Vec3Front, NewVec3(0, 1, 2))

	point := m.TransformPoint(Vec3Zero)
	if point != (NewVec3(0, 1, 2)) {
		t.Errorf("Mat4Affine: expected translation (0,1,2), got %v", point)
	}

	forward := m.TransformVector(Vec3Front)
	if forward != Vec3Front {
		t.Errorf("Mat4Affine: expected forward basis unchanged, got %v", forward)
	}
}

func TestMat4TRSRoundTrip(t *testing.T) {
	translation := NewVec3(2, 0, 0)
	m := Mat4TRS(translation, Vec3Zero, Vec3One)

	result := m.TransformPoint(Vec3Zero)
	if result != translation {
		t.Errorf("Mat4TRS: expected %v, got %v", translation, result)
	}
}

func TestColorRGBMaxToOne(t *testing.T) {
	c := NewColorRGB(2, 1, 0.5)
	result := c.MaxToOne()

	if result.R != 1 {
		t.Errorf("MaxToOne: expected R=1, got %v", result.R)
	}
	if math.Abs(float64(result.G-0.5)) > 1e-6 {
		t.Errorf("MaxToOne: expected G=0.5, got %v", result.G)
	}
	if math.Abs(float64(result.B-0.25)) > 1e-6 {
		t.Errorf("MaxToOne: expected B=0.25, got %v", result.B)
	}
}

func TestColorRGBMaxToOneNoOp(t *testing.T) {
	c := NewColorRGB(0.2, 0.4, 0.6)
	result := c.MaxToOne()
	if result != c {
		t.Errorf("MaxToOne: expected unchanged %v, got %v", c, result)
	}
}

func TestColorRGBClamp01(t *testing.T) {
	c := NewColorRGB(-0.5, 0.5, 1.5)
	result := c.Clamp01()
	expected := NewColorRGB(0, 0.5, 1)
	if result != expected {
		t.Errorf("Clamp01: expected %v, got %v", expected, result)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
