package render

import (
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
)

// Projector maps world points onto a pixel or cell grid whose rows grow downward
// Aspect is screen units per grid row (1 for pixels, about 2 for terminal cells)
type Projector struct {
	Camera engine.Camera
	Width  float32
	Height float32
	Aspect float32
}

// Viewport is the grid size in screen units
func (p Projector) Viewport() core.Point {
	return core.Point{p.Width, p.Height * p.Aspect}
}

// GridToScreen converts grid coordinates to y-up screen units
func (p Projector) GridToScreen(g core.Point) core.Point {
	return core.Point{g.X(), (p.Height - g.Y()) * p.Aspect}
}

// ToGrid projects a world point to grid coordinates
func (p Projector) ToGrid(w core.Point) core.Point {
	s := p.Camera.ToScreen(w, p.Viewport())
	return core.Point{s.X(), p.Height - s.Y()/p.Aspect}
}

// ToWorld is the inverse of ToGrid
func (p Projector) ToWorld(g core.Point) core.Point {
	return p.Camera.ToWorld(p.GridToScreen(g), p.Viewport())
}

// Length converts a world length to horizontal grid units
func (p Projector) Length(l float32) float32 {
	return l / p.Camera.Scale
}

// ClipSegment clips a-b to the rectangle lo-hi (Liang-Barsky)
func ClipSegment(a, b, lo, hi core.Point) (core.Point, core.Point, bool) {
	d := b.Sub(a)
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-d.X(), a.X() - lo.X()},
		{d.X(), hi.X() - a.X()},
		{-d.Y(), a.Y() - lo.Y()},
		{d.Y(), hi.Y() - a.Y()},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}
