package hopf

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed saturation and lightness of every fiber color.
const (
	FiberSaturation = 1.0
	FiberLightness  = 0.6
)

// Color is an HSL display color. Hue is in whole degrees.
type Color struct {
	Hue        int
	Saturation float64
	Lightness  float64
}

// ColorOf derives the display color of base point p from its polar angle,
// measured from the +Y axis. The result does not depend on |p|.
func ColorOf(p Point3) Color {
	phi := polarAngle(p)
	return Color{
		Hue:        int(math.Floor(phi / (2 * math.Pi) * 360)),
		Saturation: FiberSaturation,
		Lightness:  FiberLightness,
	}
}

func polarAngle(p Point3) float64 {
	r := p.Length()
	if r == 0 {
		return 0
	}
	return math.Acos(math.Max(-1, math.Min(1, p.Y/r)))
}

// Colorful converts c to sRGB.
func (c Color) Colorful() colorful.Color {
	return colorful.Hsl(float64(c.Hue), c.Saturation, c.Lightness).Clamped()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.Colorful().RGBA()
}

// RGB255 returns the 8-bit sRGB channels of c.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Colorful().RGB255()
}

// Hex returns c as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}
