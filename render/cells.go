package render

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/optics"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/sandbox"
	"github.com/lixenwraith/prism/vmath"
)

// CellRenderer draws frames onto a CellCanvas, keeping the bottom row for status
type CellRenderer struct {
	Aspect float32
}

// Projector returns the mapping used for the scene area of c
func (r CellRenderer) Projector(c *CellCanvas, cam engine.Camera) Projector {
	w, h := c.Size()
	return Projector{Camera: cam, Width: float32(w), Height: float32(max(h-1, 0)), Aspect: r.Aspect}
}

// Draw renders f onto c
func (r CellRenderer) Draw(c *CellCanvas, f sandbox.Frame) {
	c.Clear()
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}
	proj := r.Projector(c, f.Camera)

	r.drawBodies(c, proj, f)
	r.drawJoints(c, proj, f)
	for _, seg := range f.Segments {
		r.drawSegment(c, proj, seg)
	}
	for _, prim := range f.Overlay {
		r.drawPrimitive(c, proj, prim)
	}
	r.drawStatus(c, f, h-1)
}

// drawBodies fills each cell whose centre lies inside a body, back to front
func (r CellRenderer) drawBodies(c *CellCanvas, proj Projector, f sandbox.Frame) {
	rows := int(proj.Height)
	for y := 0; y < rows; y++ {
		for x := 0; x < int(proj.Width); x++ {
			p := proj.ToWorld(core.Point{float32(x) + 0.5, float32(y) + 0.5})
			for _, b := range f.Bodies {
				if !physics.Contains(b.Shape, b.Pose, p) {
					continue
				}
				if b.Sensor {
					c.Set(x, y, 'o', RgbSensor, core.RGB{}, BlendFgOnly, 1)
					continue
				}
				col, alpha := bodyColor(b)
				c.Set(x, y, 0, core.RGB{}, col, BlendAlphaBg, alpha)
				if b.Entity == f.Selected {
					c.Set(x, y, '░', RgbSelection, core.RGB{}, BlendFgOnly, 1)
				}
				if b.Laser != nil {
					c.Set(x, y, '◉', RgbLaser, core.RGB{}, BlendFgOnly, 1)
				}
			}
		}
	}
}

func (r CellRenderer) drawJoints(c *CellCanvas, proj Projector, f sandbox.Frame) {
	for _, j := range f.Joints {
		at, ok := JointPosition(f.Bodies, j)
		if !ok {
			continue
		}
		g := proj.ToGrid(at)
		glyph := '+'
		if j.Kind == physics.JointRevolute {
			glyph = '*'
		}
		c.Set(int(math32.Floor(g.X())), int(math32.Floor(g.Y())), glyph, RgbJoint, core.RGB{}, BlendFgOnly, 1)
	}
}

func (r CellRenderer) drawSegment(c *CellCanvas, proj Projector, seg optics.Segment) {
	a, b, ok := ClipSegment(proj.ToGrid(seg.Start), proj.ToGrid(seg.End),
		core.Point{0, 0}, core.Point{proj.Width - 0.001, proj.Height - 0.001})
	if !ok {
		return
	}
	glyph := lineGlyph(b.Sub(a), r.Aspect)
	c.Line(int(a.X()), int(a.Y()), int(b.X()), int(b.Y()), glyph, seg.Color.RGB, BlendAddFg, float64(seg.Color.A))
}

func (r CellRenderer) drawPrimitive(c *CellCanvas, proj Projector, prim engine.Primitive) {
	switch prim.Kind {
	case engine.PrimitiveRect:
		o := prim.Origin
		corners := []core.Point{o, o.Add(core.Point{prim.Extent.X(), 0}), o.Add(prim.Extent), o.Add(core.Point{0, prim.Extent.Y()})}
		r.outline(c, proj, corners, prim.Color)
	case engine.PrimitiveRing:
		r.outline(c, proj, vmath.CirclePath(prim.Origin, prim.Radius, 32), prim.Color)
	case engine.PrimitivePolygon:
		for y := 0; y < int(proj.Height); y++ {
			for x := 0; x < int(proj.Width); x++ {
				p := proj.ToWorld(core.Point{float32(x) + 0.5, float32(y) + 0.5})
				if InPolygon(prim.Points, p) {
					c.Set(x, y, 0, core.RGB{}, prim.Color.RGB, BlendAlphaBg, float64(prim.Color.A))
				}
			}
		}
	}
}

// outline strokes a closed path
func (r CellRenderer) outline(c *CellCanvas, proj Projector, pts []core.Point, col core.RGBA) {
	for i := range pts {
		seg := optics.Segment{Start: pts[i], End: pts[(i+1)%len(pts)], Color: col}
		a, b, ok := ClipSegment(proj.ToGrid(seg.Start), proj.ToGrid(seg.End),
			core.Point{0, 0}, core.Point{proj.Width - 0.001, proj.Height - 0.001})
		if !ok {
			continue
		}
		c.Line(int(a.X()), int(a.Y()), int(b.X()), int(b.Y()), '·', col.RGB, BlendFgOnly, 1)
	}
}

func (r CellRenderer) drawStatus(c *CellCanvas, f sandbox.Frame, row int) {
	w, _ := c.Size()
	c.Text(0, row, strings.Repeat(" ", w), RgbStatusFg, RgbStatusBg)

	status := fmt.Sprintf(" L:%s R:%s | bodies %d | rays %d", f.Tools[0], f.Tools[1], len(f.Bodies), f.Stats.Rays)
	if f.Paused {
		status += " | paused"
	}
	if n := len(f.Notices); n > 0 {
		status += " | " + f.Notices[n-1]
	}
	c.Text(0, row, status, RgbStatusFg, RgbStatusBg)
}

// lineGlyph picks a rune approximating the slope of d in grid units
func lineGlyph(d core.Point, aspect float32) rune {
	a := vmath.WrapHalf(vmath.AngleOf(core.Point{d.X(), -d.Y() * aspect}))
	switch {
	case math32.Abs(a) < math32.Pi/8:
		return '─'
	case math32.Abs(a) > 3*math32.Pi/8:
		return '│'
	case a > 0:
		return '╱'
	}
	return '╲'
}
