package fractal

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// RGBA() returns alpha-premultiplied 16-bit channels.
	fa := float64(a) / 65535
	return RGBA{
		R: float64(r) / 65535 / fa,
		G: float64(g) / 65535 / fa,
		B: float64(b) / 65535 / fa,
		A: fa,
	}
}

// Transparent is fully transparent black.
var Transparent = RGBA{}

// ClearColor is the background clear color used by the renderers.
var ClearColor = RGBA{R: 0.2, G: 0.3, B: 0.3, A: 1.0}

// Fixed red and blue channels of the depth color rule. Only green varies.
const (
	depthColorRed  = 0.25
	depthColorBlue = 0.75
)

// DepthColor returns the color assigned to every vertex of a triangle
// emitted at the given recursion depth: (0.25, depth/maxDepth, 0.75).
// The green channel ramps from 0 at the root to 1 at the leaves.
//
// A maxDepth of zero or below would divide by zero; the single triangle
// emitted in that case gets green = 0.
func DepthColor(depth, maxDepth int) RGBA {
	green := 0.0
	if maxDepth > 0 {
		green = float64(depth) / float64(maxDepth)
	}
	return RGBA{R: depthColorRed, G: green, B: depthColorBlue, A: 1.0}
}

// clamp255 clamps v to the range [0, 255].
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
