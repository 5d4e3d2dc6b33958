package math

// ColorRGB is a linear-light color triple. Like Vec3 it carries no
// alpha and performs no gamma correction — that is the host's job.
type ColorRGB struct {
	R, G, B float32
}

var (
	ColorBlack = ColorRGB{0, 0, 0}
	ColorWhite = ColorRGB{1, 1, 1}
	ColorRed   = ColorRGB{1, 0, 0}
	ColorGreen = ColorRGB{0, 1, 0}
	ColorBlue  = ColorRGB{0, 0, 1}
)

func NewColorRGB(r, g, b float32) ColorRGB {
	return ColorRGB{R: r, G: g, B: b}
}

func (c ColorRGB) Add(other ColorRGB) ColorRGB {
	return ColorRGB{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Mul multiplies two colors component-wise (e.g. radiance * albedo).
func (c ColorRGB) Mul(other ColorRGB) ColorRGB {
	return ColorRGB{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

// Sub subtracts two colors component-wise.
func (c ColorRGB) Sub(other ColorRGB) ColorRGB {
	return ColorRGB{R: c.R - other.R, G: c.G - other.G, B: c.B - other.B}
}

func (c ColorRGB) Scale(s float32) ColorRGB {
	return ColorRGB{R: c.R * s, G: c.G * s, B: c.B * s}
}

// MaxToOne rescales every channel by dividing by the largest channel
// when any channel exceeds 1, preserving hue instead of hard-clipping.
func (c ColorRGB) MaxToOne() ColorRGB {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	if m > 1 {
		inv := 1 / m
		return ColorRGB{R: c.R * inv, G: c.G * inv, B: c.B * inv}
	}
	return c
}

// Clamp01 clamps every channel independently into [0,1].
func (c ColorRGB) Clamp01() ColorRGB {
	return ColorRGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
