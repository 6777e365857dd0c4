package render

import (
	"github.com/lixenwraith/prism/core"
)

// BlendMode selects a compositing operation and the channels it touches (Flags | Op)
type BlendMode uint8

// Blend operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opAdd     uint8 = 0x02
)

// Blend flags
const (
	flagBg uint8 = 0x10
	flagFg uint8 = 0x20
)

// Pre-defined blend modes
const (
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)

	BlendFgOnly  = BlendMode(opReplace | flagFg)
	BlendAddFg   = BlendMode(opAdd | flagFg) // Light accumulation for beams
	BlendAlphaBg = BlendMode(opAlpha | flagBg)
)

func apply(op uint8, dst, src core.RGB, alpha float64) core.RGB {
	switch op {
	case opAlpha:
		return dst.Blend(src, alpha)
	case opAdd:
		return dst.Add(scale(src, alpha))
	}
	return src
}

// scale multiplies channels by a in [0,1]
func scale(c core.RGB, a float64) core.RGB {
	if a >= 1 {
		return c
	}
	if a <= 0 {
		return core.RGBBlack
	}
	return core.RGB{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
	}
}
