package render

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/sandbox"
)

const captionSize = 12.0

// Raster draws frames into an RGBA image
type Raster struct {
	dc   *gg.Context
	face font.Face
}

// NewRaster creates a raster of the given pixel size
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("raster size must be positive, got %dx%d", width, height)
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse caption font")
	}
	return &Raster{
		dc: gg.NewContext(width, height),
		face: truetype.NewFace(ttf, &truetype.Options{
			Size:    captionSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// Projector returns the pixel mapping for cam
func (r *Raster) Projector(cam engine.Camera) Projector {
	return Projector{
		Camera: cam,
		Width:  float32(r.dc.Width()),
		Height: float32(r.dc.Height()),
		Aspect: 1,
	}
}

// Draw renders f with an optional caption in the top-left corner
func (r *Raster) Draw(f sandbox.Frame, caption string) {
	dc := r.dc
	proj := r.Projector(f.Camera)

	setRGB(dc, RgbBackground, 1)
	dc.Clear()

	for _, b := range f.Bodies {
		r.drawBody(proj, b, b.Entity == f.Selected)
	}

	for _, j := range f.Joints {
		at, ok := JointPosition(f.Bodies, j)
		if !ok {
			continue
		}
		p := proj.ToGrid(at)
		setRGB(dc, RgbJoint, 1)
		dc.DrawCircle(float64(p.X()), float64(p.Y()), 3)
		if j.Kind == physics.JointRevolute {
			dc.SetLineWidth(1.5)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}

	for _, seg := range f.Segments {
		a, b := proj.ToGrid(seg.Start), proj.ToGrid(seg.End)
		setRGB(dc, seg.Color.RGB, float64(seg.Color.A))
		dc.SetLineWidth(max(1, float64(proj.Length(seg.Width))))
		dc.DrawLine(float64(a.X()), float64(a.Y()), float64(b.X()), float64(b.Y()))
		dc.Stroke()
	}

	for _, prim := range f.Overlay {
		r.drawPrimitive(proj, prim)
	}

	if caption != "" {
		dc.SetFontFace(r.face)
		setRGB(dc, RgbStatusFg, 1)
		dc.DrawString(caption, 8, 8+captionSize)
	}
}

func (r *Raster) drawBody(proj Projector, b physics.Body, selected bool) {
	dc := r.dc
	p := proj.ToGrid(b.Pose.Position)
	scale := b.Pose.Scale
	if scale == (core.Point{}) {
		scale = core.Point{1, 1}
	}

	dc.Push()
	defer dc.Pop()
	dc.Translate(float64(p.X()), float64(p.Y()))
	dc.Rotate(-float64(b.Pose.Rotation)) // Rows grow downward

	switch s := b.Shape.(type) {
	case physics.Circle:
		rad := float64(proj.Length(s.Radius * scale.X()))
		dc.DrawCircle(0, 0, rad)
		r.fillStroke(b, selected)
		if !b.Sensor {
			// Orientation tick
			setRGB(dc, RgbJoint, 0.5)
			dc.SetLineWidth(1)
			dc.DrawLine(0, 0, rad, 0)
			dc.Stroke()
		}
	case physics.Box:
		hw := float64(proj.Length(s.HalfExtents.X() * scale.X()))
		hh := float64(proj.Length(s.HalfExtents.Y() * scale.Y()))
		dc.DrawRectangle(-hw, -hh, 2*hw, 2*hh)
		r.fillStroke(b, selected)
	}
}

// fillStroke fills the current path with the body color and outlines it
func (r *Raster) fillStroke(b physics.Body, selected bool) {
	dc := r.dc
	if b.Sensor {
		setRGB(dc, RgbSensor, 0.8)
		dc.SetLineWidth(1)
		dc.Stroke()
		return
	}
	col, alpha := bodyColor(b)
	if b.Laser != nil {
		col, alpha = RgbLaser, 1
	}
	setRGB(dc, col, alpha)
	dc.FillPreserve()

	outline, width := col, 1.0
	if selected {
		outline, width = RgbSelection, 2.5
	}
	setRGB(dc, outline, 1)
	dc.SetLineWidth(width)
	dc.Stroke()
}

func (r *Raster) drawPrimitive(proj Projector, prim engine.Primitive) {
	dc := r.dc
	setRGB(dc, prim.Color.RGB, float64(prim.Color.A))
	dc.SetLineWidth(1.5)

	switch prim.Kind {
	case engine.PrimitiveRect:
		a := proj.ToGrid(prim.Origin)
		b := proj.ToGrid(prim.Origin.Add(prim.Extent))
		dc.DrawRectangle(float64(min(a.X(), b.X())), float64(min(a.Y(), b.Y())),
			float64(abs32(b.X()-a.X())), float64(abs32(b.Y()-a.Y())))
		dc.Stroke()
	case engine.PrimitiveRing:
		c := proj.ToGrid(prim.Origin)
		dc.DrawCircle(float64(c.X()), float64(c.Y()), float64(proj.Length(prim.Radius)))
		dc.Stroke()
	case engine.PrimitivePolygon:
		if len(prim.Points) < 3 {
			return
		}
		for i, pt := range prim.Points {
			g := proj.ToGrid(pt)
			if i == 0 {
				dc.MoveTo(float64(g.X()), float64(g.Y()))
			} else {
				dc.LineTo(float64(g.X()), float64(g.Y()))
			}
		}
		dc.ClosePath()
		dc.Fill()
	}
}

// EncodePNG writes the current image
func (r *Raster) EncodePNG(w io.Writer) error {
	return errors.Wrap(r.dc.EncodePNG(w), "encode png")
}

// SavePNG writes the current image to path
func (r *Raster) SavePNG(path string) error {
	return errors.Wrapf(r.dc.SavePNG(path), "save %s", path)
}

// At returns the pixel color at x, y
func (r *Raster) At(x, y int) (core.RGB, uint8) {
	c := r.dc.Image().At(x, y)
	cr, cg, cb, ca := c.RGBA()
	return core.RGB{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8)}, uint8(ca >> 8)
}

func setRGB(dc *gg.Context, c core.RGB, alpha float64) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(max(0, min(alpha, 1))*255))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
