package optics

import (
	"iter"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/vmath"
)

// scriptedScene reports one hit at a fixed distance along every ray
type scriptedScene struct {
	toi    float32
	normal func(dir core.Point) core.Point
	info   physics.OpticalInfo
	casts  int
}

func (s *scriptedScene) PointIntersections(core.Point, physics.QueryFilter) iter.Seq[core.Entity] {
	return func(func(core.Entity) bool) {}
}

func (s *scriptedScene) RayIntersections(origin, dir core.Point, maxDist float32, _ bool, _ physics.QueryFilter) iter.Seq[physics.RayHit] {
	s.casts++
	return func(yield func(physics.RayHit) bool) {
		// Origin graze is always reported and must be ignored
		if !yield(physics.RayHit{Entity: 1, Toi: 0, Point: origin, Normal: dir.Mul(-1)}) {
			return
		}
		if s.toi > maxDist {
			return
		}
		yield(physics.RayHit{Entity: 1, Toi: s.toi, Point: origin.Add(dir.Mul(s.toi)), Normal: s.normal(dir)})
	}
}

func (s *scriptedScene) OpticalInfo(core.Entity) (physics.OpticalInfo, error) {
	return s.info, nil
}

func facing(dir core.Point) core.Point { return dir.Mul(-1) }

func white() core.HSVA { return core.HSVA{H: 0, S: 0, V: 1, A: 1} }

func newTestSolver(scene interface {
	physics.SceneQuery
	physics.OpticalLookup
}, strict bool) *Solver {
	cfg := config.Default()
	cfg.DebugAssertions = strict
	return NewSolver(scene, scene, cfg, nil)
}

func source(color core.HSVA) Ray {
	return Ray{
		Length:          math32.Inf(1),
		Strength:        1,
		Color:           color,
		Width:           0.1,
		RefractiveIndex: parameter.AirIndex,
	}
}

func TestShoot_StrengthFloor(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.5}}
	s := newTestSolver(scene, true)

	p := NewPass(100, physics.QueryFilter{}, parameter.MaxRays)
	r := source(white())
	r.Strength = parameter.StrengthEpsilon * 0.99
	s.Shoot(p, r)

	assert.Empty(t, p.Rays)
	assert.Equal(t, 0, p.Budget.Count)
	assert.Equal(t, 0, scene.casts)
}

func TestShoot_NoHitRecordsClampedRay(t *testing.T) {
	scene := &scriptedScene{toi: 1000, normal: facing}
	s := newTestSolver(scene, true)

	rays := s.Trace(source(white()), 40, physics.QueryFilter{})
	require.Len(t, rays, 1)
	assert.Equal(t, float32(40), rays[0].Length)
}

func TestShoot_ReflectiveOnly(t *testing.T) {
	w := physics.NewWorld(0)
	w.Spawn(physics.BodyDef{
		Shape:   physics.Box{HalfExtents: core.Point{1, 1}},
		Pose:    core.Transform{Position: core.Point{6, 0}},
		Mode:    core.BodyFixed,
		Optical: &physics.OpticalInfo{RefractiveIndex: math32.Inf(1), Color: white()},
	})
	s := newTestSolver(w, true)

	rays := s.Trace(source(white()), 100, physics.QueryFilter{})
	require.Len(t, rays, 2)

	reflected, incoming := rays[0], rays[1]
	assert.InDelta(t, 5, incoming.Length, 1e-4)
	assert.InDelta(t, 1, incoming.Strength, 1e-6)

	assert.InDelta(t, math32.Pi, vmath.WrapPi(reflected.Angle), 1e-4)
	assert.InDelta(t, 0.95, reflected.Strength, 1e-5)
	assert.InDelta(t, 5, reflected.StartDistance, 1e-4)
	assert.Equal(t, parameter.AirIndex, reflected.RefractiveIndex)
}

func TestShoot_SaturatedRefractsAsOneBeam(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.5}}
	s := newTestSolver(scene, true)

	p := NewPass(100, physics.QueryFilter{}, 1) // Only the source branches
	red := core.HSVA{H: 0, S: 1, V: 1, A: 1}
	s.Shoot(p, source(red))

	// reflected, direct, incoming
	require.Len(t, p.Rays, 3)
	direct := p.Rays[1]
	assert.InDelta(t, 0, vmath.WrapPi(direct.Angle), 1e-5, "normal incidence passes straight through")
	assert.InDelta(t, AdjustIndex(1.5, 0), direct.RefractiveIndex, 1e-6)
	assert.Equal(t, red.H, direct.Color.H)
}

func TestShoot_WhiteDisperses(t *testing.T) {
	scene := &scriptedScene{
		toi:    1,
		normal: func(core.Point) core.Point { return vmath.Direction(math32.Pi + 0.5) },
		info:   physics.OpticalInfo{RefractiveIndex: 1.5},
	}
	s := newTestSolver(scene, true)

	p := NewPass(100, physics.QueryFilter{}, 1)
	s.Shoot(p, source(white()))

	// reflected, 12 hues, incoming
	require.Len(t, p.Rays, 2+parameter.RainbowHues)
	hues := make(map[float32]bool)
	for _, r := range p.Rays[1 : 1+parameter.RainbowHues] {
		hues[r.Color.H] = true
		assert.Equal(t, float32(1), r.Color.S)
	}
	assert.Len(t, hues, parameter.RainbowHues)

	// Dispersion fans the hues across distinct angles
	first, last := p.Rays[1].Angle, p.Rays[parameter.RainbowHues].Angle
	assert.NotEqual(t, first, last)
}

func TestShoot_BranchCap(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.5}}
	s := newTestSolver(scene, true)

	// One below the cap: the ray branches, its children do not
	p := NewPass(100, physics.QueryFilter{}, 10)
	p.Budget.Count = 9
	s.Shoot(p, source(white()))

	require.NotEmpty(t, p.Rays)
	for _, r := range p.Rays {
		assert.LessOrEqual(t, r.StartDistance, float32(1), "grandchild spawned past the cap")
	}
	assert.Greater(t, len(p.Rays), 1)

	// At the cap: recorded, not expanded
	p = NewPass(100, physics.QueryFilter{}, 10)
	p.Budget.Count = 10
	s.Shoot(p, source(white()))
	require.Len(t, p.Rays, 1)
	assert.InDelta(t, 1, p.Rays[0].Length, 1e-6)
}

func TestTrace_Bounded(t *testing.T) {
	scene := &scriptedScene{toi: 0.5, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.2}}
	s := newTestSolver(scene, true)

	rays := s.Trace(source(white()), math32.Inf(1), physics.QueryFilter{})
	// Each of at most MaxRays expanded rays records itself plus up to 1+1+hues children
	assert.LessOrEqual(t, len(rays), parameter.MaxRays*(2+parameter.RainbowHues)+1)
}

func TestTrace_StrengthMonotonic(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.3}}
	s := newTestSolver(scene, true)

	rays := s.Trace(source(core.HSVA{H: 0.3, S: 0.5, V: 1, A: 1}), 30, physics.QueryFilter{})

	// Every hit is one unit further, so the level of a ray is its start distance
	best := make(map[int]float32)
	for _, r := range rays {
		lvl := int(r.StartDistance + 0.5)
		best[lvl] = max(best[lvl], r.Strength)
		assert.GreaterOrEqual(t, r.StartDistance, float32(0))
		assert.GreaterOrEqual(t, r.Strength, parameter.StrengthEpsilon)
	}
	for lvl := 1; lvl < len(best); lvl++ {
		if _, ok := best[lvl]; !ok {
			continue
		}
		assert.LessOrEqual(t, best[lvl], best[lvl-1], "level %d brighter than level %d", lvl, lvl-1)
	}
}

func TestShoot_ChildNeverOutshinesParent(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.3}}
	s := newTestSolver(scene, true)

	// A one-ray budget expands only the shot ray, so each pass holds its direct children then itself
	frontier := []Ray{source(core.HSVA{H: 0.3, S: 0.5, V: 1, A: 1})}
	pairs := 0
	for depth := 0; depth < 3 && len(frontier) > 0; depth++ {
		var next []Ray
		for _, parent := range frontier {
			p := NewPass(30, physics.QueryFilter{}, 1)
			s.Shoot(p, parent)
			require.NotEmpty(t, p.Rays)
			self := p.Rays[len(p.Rays)-1]
			require.Equal(t, parent.Start, self.Start)

			for _, c := range p.Rays[:len(p.Rays)-1] {
				assert.LessOrEqual(t, c.Strength, parent.Strength, "depth %d", depth)
				assert.GreaterOrEqual(t, c.StartDistance, parent.StartDistance, "depth %d", depth)
				assert.InDelta(t, self.End().X(), c.Start.X(), 1e-5, "child starts where its parent stops")
				assert.InDelta(t, self.End().Y(), c.Start.Y(), 1e-5)
				c.Length = math32.Inf(1)
				next = append(next, c)
				pairs++
			}
		}
		frontier = next
	}
	assert.Greater(t, pairs, 2)
}

func TestShoot_TotalInternalReflection(t *testing.T) {
	normalAngle := float32(math32.Pi)
	scene := &scriptedScene{
		toi:    1,
		normal: func(core.Point) core.Point { return vmath.Direction(normalAngle) },
		info:   physics.OpticalInfo{RefractiveIndex: 1.2},
	}
	s := newTestSolver(scene, true)

	r := source(core.HSVA{H: 0.6, S: 0.5, V: 1, A: 1})
	r.RefractiveIndex = 2.5
	r.Angle = 60 * math32.Pi / 180 // 60° incidence against a -x facing surface

	p := NewPass(100, physics.QueryFilter{}, 1)
	s.Shoot(p, r)

	// Only reflected and incoming survive
	require.Len(t, p.Rays, 2)
	assert.InDelta(t, vmath.WrapPi(normalAngle-r.Angle), vmath.WrapPi(p.Rays[0].Angle), 1e-5)
	assert.Equal(t, float32(2.5), p.Rays[0].RefractiveIndex)
}

func TestShoot_NonFinite(t *testing.T) {
	scene := &scriptedScene{toi: 1, normal: facing, info: physics.OpticalInfo{RefractiveIndex: 1.5}}

	bad := source(white())
	bad.Angle = math32.NaN()

	strict := newTestSolver(scene, true)
	assert.Panics(t, func() { strict.Shoot(NewPass(100, physics.QueryFilter{}, 10), bad) })

	lenient := newTestSolver(scene, false)
	p := NewPass(100, physics.QueryFilter{}, 10)
	lenient.Shoot(p, bad)
	assert.Empty(t, p.Rays)
	assert.Equal(t, 1, p.Rejected)
}

func TestTrace_ThroughGlassBlock(t *testing.T) {
	w := physics.NewWorld(0)
	w.Spawn(physics.BodyDef{
		Shape:   physics.Box{HalfExtents: core.Point{1, 1}},
		Pose:    core.Transform{Position: core.Point{4, 0}},
		Mode:    core.BodyFixed,
		Optical: &physics.OpticalInfo{RefractiveIndex: 1.5, Color: white()},
	})
	s := newTestSolver(w, true)

	rays := s.Trace(source(core.HSVA{H: 0.5, S: 1, V: 1, A: 1}), 50, physics.QueryFilter{})

	var insideExit bool
	for _, r := range rays {
		assert.True(t, vmath.FiniteVec(r.Start))
		if r.Start.X() > 2.9 && r.Start.X() < 3.1 && math32.Abs(vmath.WrapPi(r.Angle)) < 1e-3 && r.Length > 1.9 && r.Length < 2.1 {
			insideExit = true
		}
	}
	assert.True(t, insideExit, "refracted ray crosses the block to its far face")
}
