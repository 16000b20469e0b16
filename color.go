package canvas

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents a color with red, green, blue, and alpha components.
// Each component should be in the range [0, 1]; values outside the range are
// stored as given and only clamped when converted for the GPU.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a color from RGBA components.
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// Color converts c to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// RGBA implements color.Color, returning alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Float32 returns the clamped channels in the order expected by the shader
// color uniform.
func (c Color) Float32() [4]float32 {
	return [4]float32{
		float32(clamp01(c.R)),
		float32(clamp01(c.G)),
		float32(clamp01(c.B)),
		float32(clamp01(c.A)),
	}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	if nc, ok := c.(color.NRGBA); ok {
		return Color{
			R: float64(nc.R) / 255,
			G: float64(nc.G) / 255,
			B: float64(nc.B) / 255,
			A: float64(nc.A) / 255,
		}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// color.Color is premultiplied; Color is straight alpha.
	return Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// Named looks up a CSS/SVG color keyword such as "cornflowerblue".
// The lookup is case-insensitive.
func Named(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, false
	}
	return FromColor(c), true
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed input yields opaque black.
func Hex(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
	case 4: // RGBA
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
		a = parseHex(hex[3:4]) * 17
	case 6: // RRGGBB
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
	case 8: // RRGGBBAA
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
		a = parseHex(hex[6:8])
	default:
		return Black
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// ParseColor resolves a color keyword or hex string.
func ParseColor(s string) (Color, bool) {
	if c, ok := Named(s); ok {
		return c, true
	}
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return Color{}, false
	}
	for i := 0; i < len(h); i++ {
		if hexDigit(h[i]) < 0 {
			return Color{}, false
		}
	}
	return Hex(h), true
}

func parseHex(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		d := hexDigit(s[i])
		if d < 0 {
			return v
		}
		v = v*16 + uint32(d)
	}
	return v
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	}
	return -1
}

// Premultiply returns a premultiplied color.
func (c Color) Premultiply() Color {
	return Color{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = NewColor(0, 0, 0, 0)
)
