package frame

import (
	"math"
	"runtime"
	"sync"

	"github.com/mrigankad/bvhtracer/camera"
	"github.com/mrigankad/bvhtracer/geometry"
	math32 "github.com/mrigankad/bvhtracer/math"
	"github.com/mrigankad/bvhtracer/scene"
	"github.com/mrigankad/bvhtracer/shading"
)

// Dispatcher renders one frame at a time: it recomputes the camera
// basis, then maps every pixel to a primary ray and a shaded color.
type Dispatcher struct {
	Pipeline shading.Pipeline
	// Workers is the worker-goroutine count; zero means
	// runtime.NumCPU().
	Workers int
}

// Render fills fb by tracing one ray per pixel against scn as seen by
// cam. Each row is claimed by exactly one worker, so no two workers
// ever write the same framebuffer cell; running the same scene twice,
// or with a different worker count, produces byte-identical output
// because every pixel is an independent, deterministic function of its
// own index.
func (d Dispatcher) Render(scn *scene.Scene, cam *camera.Camera, fb *Framebuffer) {
	cam.UpdateBasis()

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > fb.Height {
		workers = fb.Height
	}
	if workers < 1 {
		workers = 1
	}

	rows := make(chan int, fb.Height)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				d.renderRow(scn, cam, fb, y)
			}
		}()
	}

	for y := 0; y < fb.Height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}

func (d Dispatcher) renderRow(scn *scene.Scene, cam *camera.Camera, fb *Framebuffer, py int) {
	aspect := float32(fb.Width) / float32(fb.Height)

	for px := 0; px < fb.Width; px++ {
		cx := ((2*(float32(px)+0.5))/float32(fb.Width) - 1) * aspect * cam.FOVScale
		cy := (1 - (2*(float32(py)+0.5))/float32(fb.Height)) * cam.FOVScale

		direction := cam.CameraToWorld.TransformVector(math32.NewVec3(cx, cy, 1)).Normalize()
		ray := geometry.NewRay(cam.Origin, direction, float32(math.MaxFloat32))

		color := d.shadePixel(scn, ray)
		r, g, b := quantize(color)
		fb.Set(px, py, r, g, b)
	}
}

func (d Dispatcher) shadePixel(scn *scene.Scene, ray geometry.Ray) math32.ColorRGB {
	hit := scn.GetClosestHit(ray)
	if !hit.DidHit {
		return math32.ColorBlack
	}

	material, ok := scn.Material(hit.MaterialID)
	if !ok {
		return math32.ColorBlack
	}

	viewDir := ray.Direction.Negate()
	return d.Pipeline.Shade(hit, material, viewDir, scn.Lights, scn)
}

// quantize rounds each channel into [0,255], rescaling by the largest
// channel rather than clamping so overbright highlights keep their hue
// instead of blowing out to white.
func quantize(c math32.ColorRGB) (r, g, b uint8) {
	c = c.MaxToOne()
	return uint8(math.Round(float64(c.R) * 255)),
		uint8(math.Round(float64(c.G) * 255)),
		uint8(math.Round(float64(c.B) * 255))
}
