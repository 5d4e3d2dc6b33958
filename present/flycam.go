package present

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mrigankad/bvhtracer/camera"
)

// FlyCamera drives a camera.Camera from WASD movement and
// click-and-drag mouse look, the same input mapping the tutorial this
// core was distilled from used: left-drag dollies forward/back and
// yaws, right-drag orbits yaw/pitch, both buttons pans vertically.
type FlyCamera struct {
	MoveSpeed float32 // world units per second
	LookSpeed float32 // radians per pixel of mouse delta

	lastX, lastY float64
	havePrev     bool
}

func NewFlyCamera() *FlyCamera {
	return &FlyCamera{MoveSpeed: 5, LookSpeed: 0.0025}
}

// Update reads the window's current input state and advances cam by
// dt seconds. Call once per frame before cam.UpdateBasis().
func (f *FlyCamera) Update(w *Window, cam *camera.Camera, dt float32) {
	if w.IsKeyPressed(glfw.KeyW) {
		cam.Origin = cam.Origin.Add(cam.Forward.Mul(f.MoveSpeed * dt))
	}
	if w.IsKeyPressed(glfw.KeyS) {
		cam.Origin = cam.Origin.Sub(cam.Forward.Mul(f.MoveSpeed * dt))
	}
	if w.IsKeyPressed(glfw.KeyD) {
		cam.Origin = cam.Origin.Add(cam.Right.Mul(f.MoveSpeed * dt))
	}
	if w.IsKeyPressed(glfw.KeyA) {
		cam.Origin = cam.Origin.Sub(cam.Right.Mul(f.MoveSpeed * dt))
	}

	x, y := w.GetCursorPos()
	if !f.havePrev {
		f.lastX, f.lastY = x, y
		f.havePrev = true
		return
	}
	dx := x - f.lastX
	dy := y - f.lastY
	f.lastX, f.lastY = x, y

	left := w.IsMouseButtonPressed(glfw.MouseButtonLeft)
	right := w.IsMouseButtonPressed(glfw.MouseButtonRight)

	switch {
	case left && right:
		cam.Origin = cam.Origin.Sub(cam.Up.Mul(float32(dy) * f.MoveSpeed * dt))
	case left:
		cam.Origin = cam.Origin.Sub(cam.Forward.Mul(float32(dy) * f.MoveSpeed * dt))
		cam.Yaw += float32(dx) * f.LookSpeed
	case right:
		cam.Yaw += float32(dx) * f.LookSpeed
		cam.Pitch -= float32(dy) * f.LookSpeed
	}
}
