// Package frame partitions the pixel grid into parallel work and
// writes the resulting framebuffer: the C7 frame dispatcher.
package frame

// Framebuffer is a writable W*H grid of 32-bit pixels in the host
// surface's native format. The core never interprets the pixel
// encoding itself; it only calls MapRGB, supplied by the host, to
// convert an 8-bit-per-channel color into that format.
type Framebuffer struct {
	Width, Height int
	Pixels        []uint32
	MapRGB        func(r, g, b uint8) uint32
}

// NewFramebuffer allocates a width*height pixel grid. mapRGB must be
// non-nil; a nil MapRGB would be a host configuration bug, not
// something the dispatcher can recover from.
func NewFramebuffer(width, height int, mapRGB func(r, g, b uint8) uint32) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
		MapRGB: mapRGB,
	}
}

// Set writes the pixel at (x, y). No bounds checking: callers only
// ever derive x, y from the pixel range the dispatcher itself owns.
func (f *Framebuffer) Set(x, y int, r, g, b uint8) {
	f.Pixels[x+y*f.Width] = f.MapRGB(r, g, b)
}
