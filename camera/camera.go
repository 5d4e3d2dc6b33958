// Package camera models the pinhole camera the frame dispatcher reads
// once per frame: an origin, a yaw/pitch pose, and the cached
// right/up/forward basis and camera-to-world matrix UpdateBasis
// derives from them.
package camera

import (
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// MinFOVDegrees and MaxFOVDegrees bound the field of view the camera
// will accept, per the external interface's shading constants.
const (
	MinFOVDegrees = 0.5
	MaxFOVDegrees = 179.5
)

// Camera is a pose plus its derived, cached basis. Callers mutate
// Origin/Yaw/Pitch/FOVDegrees and then call UpdateBasis once per frame
// before reading Forward/Right/Up/CameraToWorld/FOVScale.
type Camera struct {
	Origin     math32.Vec3
	Yaw        float32 // radians, rotation about world up
	Pitch      float32 // radians, rotation about the camera's local right
	FOVDegrees float32

	Forward       math32.Vec3
	Right         math32.Vec3
	Up            math32.Vec3
	CameraToWorld math32.Mat4
	FOVScale      float32
}

// New builds a camera looking down +Z with the given FOV and
// immediately computes its basis.
func New(origin math32.Vec3, fovDegrees float32) *Camera {
	c := &Camera{Origin: origin, FOVDegrees: fovDegrees}
	c.UpdateBasis()
	return c
}

// SetFOV clamps fovDegrees into [MinFOVDegrees, MaxFOVDegrees] and
// stores it; callers still need to call UpdateBasis to refresh FOVScale.
func (c *Camera) SetFOV(fovDegrees float32) {
	if fovDegrees < MinFOVDegrees {
		fovDegrees = MinFOVDegrees
	}
	if fovDegrees > MaxFOVDegrees {
		fovDegrees = MaxFOVDegrees
	}
	c.FOVDegrees = fovDegrees
}

// UpdateBasis recomputes Forward from yaw/pitch, derives Right and Up
// from it, rebuilds CameraToWorld, and refreshes FOVScale. Called once
// per frame before the dispatcher reads the camera.
func (c *Camera) UpdateBasis() {
	yawRot := math32.Mat4RotationY(c.Yaw)
	pitchRot := math32.Mat4RotationX(c.Pitch)
	c.Forward = pitchRot.Mul(yawRot).TransformVector(math32.Vec3Front).Normalize()

	c.Right = math32.Vec3Up.Cross(c.Forward).Normalize()
	c.Up = c.Forward.Cross(c.Right).Normalize()

	c.CameraToWorld = math32.Mat4Affine(c.Right, c.Up, c.Forward, c.Origin)
	c.FOVScale = float32(math.Tan(float64(c.FOVDegrees) * math.Pi / 360))
}
