package psdlayer

import "image/color"

// ColorSpace tags the interpretation of Color components.
type ColorSpace uint8

const (
	SpaceRGB  ColorSpace = iota // r, g, b
	SpaceGray                   // gray level, 0 = black
	SpaceCMYK                   // c, m, y, k
)

// Color is a device color with normalized components in [0, 1].
// The zero value is opaque black in RGB.
type Color struct {
	Space ColorSpace
	V     [4]float64
}

// RGB builds an RGB color from 8 bit components.
func RGB(r, g, b uint8) Color {
	return Color{Space: SpaceRGB, V: [4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}}
}

// Gray builds a gray color (0 = black).
func Gray(v float64) Color { return Color{Space: SpaceGray, V: [4]float64{v}} }

// CMYK builds a CMYK color with components in [0, 1].
func CMYK(c, m, y, k float64) Color {
	return Color{Space: SpaceCMYK, V: [4]float64{c, m, y, k}}
}

// ToRGB converts the color to normalized RGB components.
func (c Color) ToRGB() (r, g, b float64) {
	switch c.Space {
	case SpaceGray:
		return c.V[0], c.V[0], c.V[0]
	case SpaceCMYK:
		w := 1 - c.V[3]
		return (1 - c.V[0]) * w, (1 - c.V[1]) * w, (1 - c.V[2]) * w
	default:
		return c.V[0], c.V[1], c.V[2]
	}
}

// NRGBA converts to an 8 bit color with the given alpha.
func (c Color) NRGBA(alpha float64) color.NRGBA {
	r, g, b := c.ToRGB()
	return color.NRGBA{
		R: clamp8(r), G: clamp8(g), B: clamp8(b),
		A: clamp8(alpha),
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
