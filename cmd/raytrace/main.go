// Command raytrace loads a .rtscene file, renders it, and either
// blits the result to a live window or writes a single frame to a
// PPM file when run headless.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mrigankad/bvhtracer/frame"
	"github.com/mrigankad/bvhtracer/present"
	"github.com/mrigankad/bvhtracer/scenefile"
)

func main() {
	scenePath := flag.String("scene", "", "path to a .rtscene file (required)")
	ppmPath := flag.String("ppm", "", "write a single rendered frame to this PPM path and exit, instead of opening a window")
	workers := flag.Int("workers", 0, "worker goroutine count; 0 means runtime.NumCPU()")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: raytrace -scene path/to/scene.rtscene [-ppm out.ppm] [-workers N]")
		os.Exit(2)
	}

	loaded, err := scenefile.Load(*scenePath)
	if err != nil {
		log.Fatalf("raytrace: %v", err)
	}
	if *workers > 0 {
		loaded.Settings.Workers = *workers
	}

	dispatcher := frame.Dispatcher{Pipeline: loaded.Pipeline, Workers: loaded.Settings.Workers}

	if *ppmPath != "" {
		fb := frame.NewFramebuffer(loaded.Settings.Width, loaded.Settings.Height, present.MapRGB)
		dispatcher.Render(loaded.Scene, loaded.Camera, fb)
		if err := writePPM(*ppmPath, fb); err != nil {
			log.Fatalf("raytrace: %v", err)
		}
		return
	}

	if err := runLive(dispatcher, loaded); err != nil {
		log.Fatalf("raytrace: %v", err)
	}
}

func runLive(dispatcher frame.Dispatcher, loaded *scenefile.Loaded) error {
	win, err := present.NewWindow(present.WindowConfig{
		Width: loaded.Settings.Width, Height: loaded.Settings.Height,
		Title: "bvhtracer", Resizable: false, VSync: true,
	})
	if err != nil {
		return fmt.Errorf("opening window: %w", err)
	}
	defer win.Destroy()

	fb := frame.NewFramebuffer(loaded.Settings.Width, loaded.Settings.Height, present.MapRGB)
	flycam := present.NewFlyCamera()

	lastFrame := time.Now()
	for !win.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		win.PollEvents()
		flycam.Update(win, loaded.Camera, dt)

		dispatcher.Render(loaded.Scene, loaded.Camera, fb)
		win.Present(fb.Width, fb.Height, fb.Pixels)
		win.SwapBuffers()
	}
	return nil
}

// writePPM dumps a binary (P6) PPM, decoding the R/G/B channels back
// out of present.MapRGB's packed little-endian word.
func writePPM(path string, fb *frame.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", fb.Width, fb.Height)
	for _, p := range fb.Pixels {
		w.Write([]byte{byte(p), byte(p >> 8), byte(p >> 16)})
	}
	return w.Flush()
}
