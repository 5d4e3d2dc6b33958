// Package lighting implements the point/directional light model the
// shading pipeline samples once per light, per hit.
package lighting

import (
	"math"

	math32 "github.com/mrigankad/bvhtracer/math"
)

// Kind tags a Light as a point source or a directional (infinitely
// distant) source.
type Kind int

const (
	Point Kind = iota
	Directional
)

// Light is a tagged variant over {Point, Directional}. Origin is used
// by Point lights; Direction is used by Directional lights and points
// in the direction the light travels (from source toward the scene).
type Light struct {
	Kind      Kind
	Origin    math32.Vec3
	Direction math32.Vec3
	Color     math32.ColorRGB
	Intensity float32
}

// NewPointLight builds a point light at origin.
func NewPointLight(origin math32.Vec3, color math32.ColorRGB, intensity float32) Light {
	return Light{Kind: Point, Origin: origin, Color: color, Intensity: intensity}
}

// NewDirectionalLight builds a directional light traveling along direction.
func NewDirectionalLight(direction math32.Vec3, color math32.ColorRGB, intensity float32) Light {
	return Light{Kind: Directional, Direction: direction.Normalize(), Color: color, Intensity: intensity}
}

// DirectionAndDistance returns the unit direction from point toward the
// light and the distance a shadow ray must travel to reach it.
// Directional lights report +Inf so the shadow ray's t_max is
// effectively unbounded.
func (l Light) DirectionAndDistance(point math32.Vec3) (direction math32.Vec3, distance float32) {
	switch l.Kind {
	case Point:
		toLight := l.Origin.Sub(point)
		distance = toLight.Length()
		if distance > 0 {
			direction = toLight.Mul(1 / distance)
		}
		return direction, distance
	default: // Directional
		return l.Direction.Negate(), float32(math.Inf(1))
	}
}

// Radiance returns the light's contribution at point, before any
// surface BRDF is applied: color*intensity/d^2 for point lights,
// color*intensity (no falloff) for directional lights.
func (l Light) Radiance(point math32.Vec3) math32.ColorRGB {
	switch l.Kind {
	case Point:
		_, distance := l.DirectionAndDistance(point)
		if distance == 0 {
			return l.Color.Scale(l.Intensity)
		}
		return l.Color.Scale(l.Intensity / (distance * distance))
	default: // Directional
		return l.Color.Scale(l.Intensity)
	}
}
