package physics

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
)

// Shape is the collider geometry of a body, in body-local space
type Shape interface {
	contains(local core.Point) bool

	// castLocal intersects a local-space ray with the shape
	// Returns toi and the outward local normal at the hit; inside reports the origin was inside
	castLocal(o, d core.Point, solid bool) (toi float32, normal core.Point, inside, ok bool)

	scaled(s core.Point) Shape
}

// Circle is centred on the body origin
type Circle struct {
	Radius float32
}

// Box is centred on the body origin
type Box struct {
	HalfExtents core.Point
}

func (c Circle) contains(p core.Point) bool {
	return p.LenSqr() <= c.Radius*c.Radius
}

func (c Circle) scaled(s core.Point) Shape {
	return Circle{Radius: c.Radius * s.X()}
}

func (c Circle) castLocal(o, d core.Point, solid bool) (float32, core.Point, bool, bool) {
	b := o.Dot(d)
	cc := o.LenSqr() - c.Radius*c.Radius
	disc := b*b - cc
	if disc < 0 {
		return 0, core.Point{}, false, false
	}
	sq := math32.Sqrt(disc)

	if cc <= 0 {
		if solid {
			return 0, core.Point{}, true, true
		}
		t := -b + sq
		return t, o.Add(d.Mul(t)).Mul(1 / c.Radius), true, true
	}

	t := -b - sq
	if t < 0 {
		return 0, core.Point{}, false, false
	}
	if !solid && t < parameter.RayMinToi {
		// Starting on the surface heading in: report the far side
		t = -b + sq
		return t, o.Add(d.Mul(t)).Mul(1 / c.Radius), true, true
	}
	return t, o.Add(d.Mul(t)).Mul(1 / c.Radius), false, true
}

func (b Box) contains(p core.Point) bool {
	return math32.Abs(p.X()) <= b.HalfExtents.X() && math32.Abs(p.Y()) <= b.HalfExtents.Y()
}

func (b Box) scaled(s core.Point) Shape {
	return Box{HalfExtents: core.Point{b.HalfExtents.X() * s.X(), b.HalfExtents.Y() * s.Y()}}
}

// Slab test, tracking which axis bounds the entry and the exit
func (b Box) castLocal(o, d core.Point, solid bool) (float32, core.Point, bool, bool) {
	tEnter, tExit := math32.Inf(-1), math32.Inf(1)
	enterAxis, exitAxis := -1, -1

	for axis := 0; axis < 2; axis++ {
		h := b.HalfExtents[axis]
		if math32.Abs(d[axis]) < 1e-9 {
			if math32.Abs(o[axis]) > h {
				return 0, core.Point{}, false, false
			}
			continue
		}
		t1 := (-h - o[axis]) / d[axis]
		t2 := (h - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter, enterAxis = t1, axis
		}
		if t2 < tExit {
			tExit, exitAxis = t2, axis
		}
	}

	if tEnter > tExit || tExit < 0 {
		return 0, core.Point{}, false, false
	}

	// On the surface heading in counts as inside for hollow casts
	if tEnter >= 0 && enterAxis >= 0 && (solid || tEnter >= parameter.RayMinToi) {
		var n core.Point
		n[enterAxis] = -sign(d[enterAxis])
		return tEnter, n, false, true
	}

	// Origin inside
	if solid || exitAxis < 0 {
		return 0, core.Point{}, true, true
	}
	var n core.Point
	n[exitAxis] = sign(d[exitAxis])
	return tExit, n, true, true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// Contains reports whether the world point p lies inside shape placed at pose
func Contains(shape Shape, pose core.Transform, p core.Point) bool {
	if pose.Scale == (core.Point{}) {
		pose.Scale = core.Point{1, 1}
	}
	return shape.scaled(pose.Scale).contains(toLocal(pose, p))
}
