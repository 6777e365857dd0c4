package optics

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/vmath"
)

// Ray is one straight run of a beam, alive for a single trace
type Ray struct {
	Start           core.Point
	Angle           float32 // Radians
	Length          float32 // +Inf until clipped by fade budget or a hit
	Strength        float32 // Normalized intensity in [0,1]
	Color           core.HSVA
	Width           float32
	StartDistance   float32 // Optical path travelled before Start
	RefractiveIndex float32 // Medium the ray travels in
}

// Direction is the unit vector along Angle
func (r Ray) Direction() core.Point {
	return vmath.Direction(r.Angle)
}

// End is the far point, with unbounded lengths cut at RayFarDistance
func (r Ray) End() core.Point {
	return r.Start.Add(r.Direction().Mul(min(r.Length, parameter.RayFarDistance)))
}

// finite reports whether the ray geometry can be traced
func (r Ray) finite() bool {
	return vmath.FiniteVec(r.Start) && vmath.Finite(r.Angle) &&
		!math32.IsNaN(r.Length) && !math32.IsNaN(r.Strength) && !math32.IsNaN(r.StartDistance)
}

// Segment is a drawable line produced from a Ray
type Segment struct {
	Start, End core.Point
	Color      core.RGBA
	Width      float32
}

// Segments converts rays to lines; alpha carries the ray strength
func Segments(rays []Ray) []Segment {
	out := make([]Segment, len(rays))
	for i, r := range rays {
		out[i] = Segment{
			Start: r.Start,
			End:   r.End(),
			Color: core.HSVA{H: r.Color.H, S: r.Color.S, V: r.Color.V, A: r.Strength}.RGBA(),
			Width: r.Width,
		}
	}
	return out
}
