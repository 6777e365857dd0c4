package optics

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/vmath"
)

// ErrNonFinite marks a ray whose start or angle is NaN or infinite
var ErrNonFinite = errors.New("non-finite ray")

// Budget counts rays expanded during one source trace
// Rays taken past Max are still recorded but spawn no children
type Budget struct {
	Count int
	Max   int
}

// take counts one ray and reports whether it may branch
func (b *Budget) take() bool {
	b.Count++
	return b.Count <= b.Max
}

// Pass is the accumulator threaded through one source trace
type Pass struct {
	FadeDistance float32
	Filter       physics.QueryFilter
	Budget       Budget
	Rays         []Ray
	Rejected     int // Non-finite rays dropped outside strict mode
}

// NewPass starts a trace with a fresh budget
func NewPass(fadeDistance float32, filter physics.QueryFilter, maxRays int) *Pass {
	return &Pass{
		FadeDistance: fadeDistance,
		Filter:       filter,
		Budget:       Budget{Max: maxRays},
	}
}

// Solver expands laser beams into reflected, refracted and dispersed rays
type Solver struct {
	query   physics.SceneQuery
	lookup  physics.OpticalLookup
	maxRays int
	epsilon float32
	strict  bool
	log     *zap.Logger
}

// NewSolver binds the solver to a scene
// With cfg.DebugAssertions a non-finite ray panics; otherwise it is dropped and logged
func NewSolver(query physics.SceneQuery, lookup physics.OpticalLookup, cfg config.Config, log *zap.Logger) *Solver {
	return &Solver{
		query:   query,
		lookup:  lookup,
		maxRays: cfg.MaxRays,
		epsilon: cfg.StrengthEpsilon,
		strict:  cfg.DebugAssertions,
		log:     logging.OrNop(log).Named("optics"),
	}
}

// Trace expands source and returns every recorded ray, children before parents
func (s *Solver) Trace(source Ray, fadeDistance float32, filter physics.QueryFilter) []Ray {
	p := NewPass(fadeDistance, filter, s.maxRays)
	s.Shoot(p, source)
	return p.Rays
}

// Shoot traces one ray into p, recursing into its children while the budget allows
func (s *Solver) Shoot(p *Pass, ray Ray) {
	if ray.Strength < s.epsilon {
		return
	}
	if !ray.finite() {
		err := errors.Wrapf(ErrNonFinite, "start=%v angle=%v", ray.Start, ray.Angle)
		if s.strict {
			panic(err)
		}
		p.Rejected++
		s.log.Warn("ray rejected", zap.Error(err))
		return
	}

	expand := p.Budget.take()

	remaining := p.FadeDistance - ray.StartDistance
	if remaining <= 0 {
		return
	}
	if ray.Length > remaining {
		ray.Length = remaining
	}

	hit, ok := s.closest(ray, p.Filter)
	if !ok {
		p.Rays = append(p.Rays, ray)
		return
	}

	ray.Length = hit.Toi
	if expand {
		s.branch(p, ray, hit)
	}
	p.Rays = append(p.Rays, ray)
}

// closest finds the nearest hit beyond the self-intersection margin
func (s *Solver) closest(ray Ray, filter physics.QueryFilter) (physics.RayHit, bool) {
	maxDist := ray.Length
	if math32.IsInf(maxDist, 1) {
		maxDist = parameter.RayFarDistance
	}
	filter.ExcludeSensors = true

	var best physics.RayHit
	found := false
	for h := range s.query.RayIntersections(ray.Start, ray.Direction(), maxDist, false, filter) {
		if h.Toi <= parameter.RayMinToi {
			continue
		}
		if !found || h.Toi < best.Toi {
			best, found = h, true
		}
	}
	return best, found
}

// branch spawns the reflected, refracted and dispersed children of a truncated ray
func (s *Solver) branch(p *Pass, ray Ray, hit physics.RayHit) {
	info, err := s.lookup.OpticalInfo(hit.Entity)
	if err != nil {
		s.log.Debug("hit without optical info", zap.Uint64("entity", uint64(hit.Entity)), zap.Error(err))
		return
	}

	normalAngle := vmath.AngleOf(hit.Normal)
	incidence := vmath.WrapHalf(ray.Angle - normalAngle)

	refracted := OpacityRefracted(info.RefractiveIndex)
	reflected := 1 - refracted
	end := EndStrength(ray, p.FadeDistance)
	travelled := ray.StartDistance + ray.Length

	child := func(angle, strength float32, color core.HSVA, width, index float32) Ray {
		return Ray{
			Start:           hit.Point,
			Angle:           angle,
			Length:          math32.Inf(1),
			Strength:        strength,
			Color:           color.WithAlpha(strength),
			Width:           width,
			StartDistance:   travelled,
			RefractiveIndex: index,
		}
	}

	// Reflection stays in the incoming medium
	rs := end * reflected
	s.Shoot(p, child(normalAngle-incidence, rs, ray.Color, ray.Width, ray.RefractiveIndex))

	if math32.IsInf(info.RefractiveIndex, 0) || math32.IsNaN(info.RefractiveIndex) {
		return
	}

	// Always treated as entering the struck medium; there is no exit transition
	newIndex := info.RefractiveIndex
	transmitted := end * refracted
	side := normalAngle + vmath.HalfPi

	direct := transmitted * ray.Color.S
	if direct >= s.epsilon {
		index := AdjustIndex(newIndex, ray.Color.H)
		if angle, ok := Refract(incidence, normalAngle, ray.RefractiveIndex, index); ok {
			width := vmath.RefractionThickness(ray.Width, angle, side)
			s.Shoot(p, child(angle, direct, ray.Color, width, index))
		}
	}

	rainbow := transmitted * (1 - ray.Color.S) * parameter.RainbowShare
	if rainbow < s.epsilon {
		return
	}
	for i := 0; i < parameter.RainbowHues; i++ {
		hue := float32(i) / parameter.RainbowHues
		index := AdjustIndex(newIndex, hue)
		angle, ok := Refract(incidence, normalAngle, ray.RefractiveIndex, index)
		if !ok {
			continue
		}
		width := vmath.RefractionThickness(ray.Width, angle, side)
		strength := rainbow * HueOpacity(newIndex, index)
		s.Shoot(p, child(angle, strength, core.HSVA{H: hue, S: 1, V: 1}, width, index))
	}
}
