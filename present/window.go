// Package present is the host side of the core: an OS window, an
// OpenGL-textured quad that blits the framebuffer the dispatcher
// fills every frame, and a WASD/mouse fly camera to drive it.
package present

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// WindowConfig mirrors the host window parameters a renderer needs.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{Width: 1280, Height: 720, Title: "bvhtracer", Resizable: true, VSync: true}
}

// Window owns the GLFW handle and the GL blit target sized to match it.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int

	blit *blitter
}

// NewWindow opens a GLFW window with a live OpenGL 4.1 core context and
// prepares the fullscreen-quad blit pipeline.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("present: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(cfg.Resizable))

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("present: create window: %w", err)
	}
	handle.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("present: gl init: %w", err)
	}

	blit, err := newBlitter(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("present: %w", err)
	}

	w := &Window{Handle: handle, Width: cfg.Width, Height: cfg.Height, blit: blit}
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	return w, nil
}

func (w *Window) ShouldClose() bool { return w.Handle.ShouldClose() }
func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) SwapBuffers()      { w.Handle.SwapBuffers() }

// Present uploads a W*H RGBA8 pixel buffer (one uint32 per pixel,
// 0xAABBGGRR little-endian, matching Framebuffer.MapRGB's encoding)
// and draws it as a fullscreen textured quad.
func (w *Window) Present(width, height int, pixels []uint32) {
	w.blit.draw(width, height, pixels)
}

func (w *Window) Destroy() {
	w.blit.destroy()
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key glfw.Key) bool {
	return w.Handle.GetKey(key) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button glfw.MouseButton) bool {
	return w.Handle.GetMouseButton(button) == glfw.Press
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
