package sandbox

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/physics"
)

// Preset is a demo scene built in code
type Preset struct {
	Name  string
	Span  float32 // World width the scene is framed for
	build func(s *Sandbox)
}

// Build resets s and populates it with the preset scene
func (p Preset) Build(s *Sandbox) {
	s.Reset()
	p.build(s)
	s.Ctx.Camera.Position = core.Point{}
}

// Presets lists the built-in demo scenes
func Presets() []Preset {
	return []Preset{
		{Name: "prism", Span: 30, build: buildPrism},
		{Name: "mirror-box", Span: 30, build: buildMirrorBox},
		{Name: "glass-stack", Span: 30, build: buildGlassStack},
	}
}

// PresetByName finds a preset
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func (s *Sandbox) spawnFixed(shape physics.Shape, pos core.Point, rotation, index float32, color core.HSVA) core.Entity {
	return s.world.Spawn(physics.BodyDef{
		Shape:   shape,
		Pose:    core.Transform{Position: pos, Rotation: rotation},
		Mode:    core.BodyFixed,
		Depth:   s.Ctx.Depth.Next(),
		Optical: &physics.OpticalInfo{RefractiveIndex: index, Color: color},
	})
}

func (s *Sandbox) spawnLaser(pos core.Point, angle float32, color core.HSVA) core.Entity {
	return s.world.Spawn(physics.BodyDef{
		Shape:   physics.Circle{Radius: 0.4},
		Pose:    core.Transform{Position: pos, Rotation: angle},
		Mode:    core.BodyFixed,
		Depth:   s.Ctx.Depth.Next(),
		Optical: &physics.OpticalInfo{RefractiveIndex: 1.5, Color: color},
		Laser:   &physics.LaserSource{FadeDistance: s.cfg.DefaultFadeDistance},
	})
}

var (
	white = core.Hsva(0, 0, 1, 1)
	glass = core.Hsva(0.55, 0.2, 0.9, 0.35)
)

// buildPrism sends a white beam through a tilted glass block
func buildPrism(s *Sandbox) {
	s.spawnFixed(physics.Box{HalfExtents: core.Point{2.5, 2.5}}, core.Point{0, 0}, 0.6, 1.5, glass)
	s.spawnLaser(core.Point{-12, -1}, 0.05, white)
}

// buildMirrorBox bounces a beam inside four mirror walls
func buildMirrorBox(s *Sandbox) {
	mirror := core.Hsva(0, 0, 0.8, 1)
	inf := math32.Inf(1)
	s.spawnFixed(physics.Box{HalfExtents: core.Point{10, 0.5}}, core.Point{0, 8}, 0, inf, mirror)
	s.spawnFixed(physics.Box{HalfExtents: core.Point{10, 0.5}}, core.Point{0, -8}, 0, inf, mirror)
	s.spawnFixed(physics.Box{HalfExtents: core.Point{0.5, 8}}, core.Point{-10, 0}, 0, inf, mirror)
	s.spawnFixed(physics.Box{HalfExtents: core.Point{0.5, 8}}, core.Point{10, 0}, 0, inf, mirror)
	s.spawnFixed(physics.Circle{Radius: 1.5}, core.Point{3, 2}, 0, 1.5, glass)
	s.spawnLaser(core.Point{-6, -3}, 0.45, core.Hsva(0.0, 1, 1, 1))
}

// buildGlassStack layers slabs of rising index under an oblique beam
func buildGlassStack(s *Sandbox) {
	for i, index := range []float32{1.3, 1.5, 1.8} {
		y := 3 - float32(i)*3
		s.spawnFixed(physics.Box{HalfExtents: core.Point{8, 1.4}}, core.Point{0, y}, 0,
			index, core.Hsva(0.5+float32(i)*0.08, 0.3, 0.9, 0.3))
	}
	s.spawnLaser(core.Point{-11, 9}, -0.6, white)
}
