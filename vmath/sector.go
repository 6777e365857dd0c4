package vmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SectorPath builds a closed pie-slice polygon around center
// The slice starts at angle start and sweeps by sweep radians (either sign)
// The first vertex is center; arc vertices follow in sweep order
func SectorPath(center mgl32.Vec2, radius, start, sweep float32, segments int) []mgl32.Vec2 {
	if segments < 1 {
		segments = 1
	}
	// Scale segment count with the sweep so small slices stay cheap
	n := int(math32.Ceil(math32.Abs(sweep) / TwoPi * float32(segments)))
	if n < 1 {
		n = 1
	}

	path := make([]mgl32.Vec2, 0, n+2)
	path = append(path, center)
	for i := 0; i <= n; i++ {
		a := start + sweep*float32(i)/float32(n)
		path = append(path, center.Add(Direction(a).Mul(radius)))
	}
	return path
}

// CirclePath approximates a full circle outline with segments vertices
func CirclePath(center mgl32.Vec2, radius float32, segments int) []mgl32.Vec2 {
	if segments < 3 {
		segments = 3
	}
	path := make([]mgl32.Vec2, segments)
	for i := range path {
		a := TwoPi * float32(i) / float32(segments)
		path[i] = center.Add(Direction(a).Mul(radius))
	}
	return path
}

// RefractionThickness recomputes a beam width after it crosses an interface
// sideAngle is the surface tangent direction
func RefractionThickness(width, angle, sideAngle float32) float32 {
	denom := math32.Cos(sideAngle - angle + HalfPi)
	if denom == 0 {
		return width
	}
	w := width * math32.Sin(angle-sideAngle) / denom
	if !Finite(w) {
		return width
	}
	return w
}

// Rotate turns v by angle radians counter-clockwise
func Rotate(v mgl32.Vec2, angle float32) mgl32.Vec2 {
	return mgl32.Rotate2D(angle).Mul2x1(v)
}
