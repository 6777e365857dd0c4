package render

import (
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/vmath"
)

// JointPosition returns the world position of a joint from its first body
func JointPosition(bodies []physics.Body, j physics.Joint) (core.Point, bool) {
	for _, b := range bodies {
		if b.Entity == j.A {
			return b.Pose.Position.Add(vmath.Rotate(j.AnchorA, b.Pose.Rotation)), true
		}
	}
	return core.Point{}, false
}

// InPolygon is the even-odd rule test
func InPolygon(pts []core.Point, p core.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
			x := (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y()) + a.X()
			if p.X() < x {
				in = !in
			}
		}
	}
	return in
}

// bodyColor returns the fill color and opacity of a body
func bodyColor(b physics.Body) (core.RGB, float64) {
	if b.Optical == nil {
		return RgbBodyFill, bodyFillAlpha
	}
	if b.Optical.RefractiveIndex > 1e6 {
		return RgbMirror, 0.9
	}
	c := b.Optical.Color.RGBA()
	return c.RGB, max(float64(c.A), bodyFillAlpha)
}
