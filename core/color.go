package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell and gg
type RGB struct {
	R, G, B uint8
}

// RGBA is RGB with straight (non-premultiplied) alpha in [0,1]
type RGBA struct {
	RGB
	A float32
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Add performs additive blend with clamping (light accumulation)
func (c RGB) Add(src RGB) RGB {
	return RGB{
		R: uint8(min(int(c.R)+int(src.R), 255)),
		G: uint8(min(int(c.G)+int(src.G), 255)),
		B: uint8(min(int(c.B)+int(src.B), 255)),
	}
}

// HSVA is a hue/saturation/value color with alpha
// H is a fraction of the full wheel in [0,1), S V A in [0,1]
type HSVA struct {
	H, S, V, A float32
}

// Hsva builds a color, wrapping hue into [0,1)
func Hsva(h, s, v, a float32) HSVA {
	h -= float32(int(h))
	if h < 0 {
		h++
	}
	return HSVA{H: h, S: s, V: v, A: a}
}

// WithAlpha returns the same color carrying a new alpha
func (c HSVA) WithAlpha(a float32) HSVA {
	c.A = a
	return c
}

// RGBA converts through go-colorful, clamping out-of-gamut channels
func (c HSVA) RGBA() RGBA {
	col := colorful.Hsv(float64(c.H)*360, clamp01(float64(c.S)), clamp01(float64(c.V))).Clamped()
	r, g, b := col.RGB255()
	return RGBA{RGB: RGB{R: r, G: g, B: b}, A: float32(clamp01(float64(c.A)))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
