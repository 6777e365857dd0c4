package engine

import (
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/vmath"
)

// OverlayShape is the preview drawn for an in-progress gesture
type OverlayShape interface {
	overlayShape()
}

// RectangleShape spans Extent from the anchor; components may be negative
type RectangleShape struct {
	Extent core.Point
}

// CircleShape is centred on the anchor
type CircleShape struct {
	Radius float32
}

// RotateShape is the rotation helper around the anchor (the pivot)
type RotateShape struct {
	AngleSoFar       float32
	Scale            float32
	OriginalRotation float32
	ClickPos         core.Point
}

func (RectangleShape) overlayShape() {}
func (CircleShape) overlayShape()    {}
func (RotateShape) overlayShape()    {}

// OverlayState ties a preview to the entity it represents
type OverlayState struct {
	Target core.Entity
	Shape  OverlayShape
	Anchor core.Point
}

// Overlay holds the single transient gesture preview
type Overlay struct {
	state *OverlayState
}

func (o *Overlay) Set(s OverlayState) {
	o.state = &s
}

func (o *Overlay) Clear() {
	o.state = nil
}

// State returns the current preview, if any
func (o *Overlay) State() (OverlayState, bool) {
	if o.state == nil {
		return OverlayState{}, false
	}
	return *o.state, true
}

// PrimitiveKind selects how a renderer draws a Primitive
type PrimitiveKind uint8

const (
	PrimitiveRect    PrimitiveKind = iota // Outline from Origin spanning Extent
	PrimitiveRing                         // Circle outline at Origin with Radius
	PrimitivePolygon                      // Filled closed polygon through Points
)

// Primitive is a drawable overlay shape in world units
type Primitive struct {
	Kind   PrimitiveKind
	Origin core.Point
	Extent core.Point
	Radius float32
	Points []core.Point
	Color  core.RGBA
}

var (
	overlayOutline = core.RGBA{RGB: core.RGB{R: 230, G: 230, B: 240}, A: 0.8}
	overlaySector  = core.RGBA{RGB: core.RGB{R: 255, G: 200, B: 60}, A: 0.35}
	overlayGuide   = core.RGBA{RGB: core.RGB{R: 255, G: 200, B: 60}, A: 0.6}
)

// Primitives converts the preview to drawable shapes
// helperRadius is in screen units and is scaled by the gesture's camera scale
func (o *Overlay) Primitives(helperRadius float32, segments int) []Primitive {
	if o.state == nil {
		return nil
	}
	s := o.state

	switch shape := s.Shape.(type) {
	case RectangleShape:
		return []Primitive{{Kind: PrimitiveRect, Origin: s.Anchor, Extent: shape.Extent, Color: overlayOutline}}

	case CircleShape:
		return []Primitive{{Kind: PrimitiveRing, Origin: s.Anchor, Radius: shape.Radius, Color: overlayOutline}}

	case RotateShape:
		click := shape.ClickPos.Sub(s.Anchor)
		sector := vmath.SectorPath(s.Anchor, click.Len(), vmath.AngleOf(click), shape.AngleSoFar, segments)
		return []Primitive{
			{Kind: PrimitivePolygon, Points: sector, Color: overlaySector},
			{Kind: PrimitiveRing, Origin: s.Anchor, Radius: helperRadius * shape.Scale, Color: overlayGuide},
		}
	}
	return nil
}
