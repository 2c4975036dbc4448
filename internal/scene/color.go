package scene

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with components in [0, 1].
type Color struct {
	colorful.Color
}

func RGB(r, g, b float64) Color { return Color{colorful.Color{R: r, G: g, B: b}} }

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("scene: bad colour %q: %w", s, err)
	}
	return Color{c}, nil
}

// MustHex is ParseHex for package-level colour tables.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Mul scales every channel by k and clamps the result.
func (c Color) Mul(k float64) Color {
	return Color{colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()}
}

// Modulate multiplies the channels pairwise.
func (c Color) Modulate(o Color) Color {
	return Color{colorful.Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}.Clamped()}
}

func (c Color) Add(o Color) Color {
	return Color{colorful.Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}.Clamped()}
}

// RGBA8 returns the opaque 8-bit form of c.
func (c Color) RGBA8() color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (c Color) String() string { return c.Hex() }
