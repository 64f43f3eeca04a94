package sketch

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	Alpha float64 `json:"alpha"`
	Blue  float64 `json:"blue"`
	Green float64 `json:"green"`
	Red   float64 `json:"red"`
}

// Common colors.
var (
	Black       = Color{Alpha: 1}
	White       = Color{Red: 1, Green: 1, Blue: 1, Alpha: 1}
	Transparent = Color{}

	// DefaultFillColor is the fill new shapes get.
	DefaultFillColor = RGB8(216, 216, 216)
	// DefaultBorderColor is the border new shapes get.
	DefaultBorderColor = RGB8(151, 151, 151)
	// DefaultShadowColor is the color of a newly added shadow.
	DefaultShadowColor = Color{Alpha: 0.5}
)

// RGB8 creates an opaque color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{Red: float64(r) / 255, Green: float64(g) / 255, Blue: float64(b) / 255, Alpha: 1}
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("sketch: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("sketch: invalid hex color %q: %w", s, err)
	}
	return Color{
		Red:   float64(v>>24&0xff) / 255,
		Green: float64(v>>16&0xff) / 255,
		Blue:  float64(v>>8&0xff) / 255,
		Alpha: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the color as "#RRGGBBAA".
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// NRGBA converts the color to 8-bit non-premultiplied components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.Red),
		G: to8(c.Green),
		B: to8(c.Blue),
		A: to8(c.Alpha),
	}
}

// FromNRGBA converts 8-bit non-premultiplied components to a Color.
func FromNRGBA(n color.NRGBA) Color {
	return Color{
		Red:   float64(n.R) / 255,
		Green: float64(n.G) / 255,
		Blue:  float64(n.B) / 255,
		Alpha: float64(n.A) / 255,
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
