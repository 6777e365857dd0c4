package optics

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
)

// Emitters lists the laser bodies of a scene
type Emitters interface {
	Lasers() []physics.Body
	OpticalInfo(e core.Entity) (physics.OpticalInfo, error)
}

// Stats summarizes one frame of tracing
type Stats struct {
	Sources  int
	Rays     int
	Rejected int
}

// System traces every emitter each frame
type System struct {
	solver *Solver
	cfg    config.Config
	log    *zap.Logger
}

// NewSystem creates a laser system over scene
func NewSystem(scene physics.Scene, cfg config.Config, log *zap.Logger) *System {
	log = logging.OrNop(log)
	return &System{
		solver: NewSolver(scene, scene, cfg, log),
		cfg:    cfg,
		log:    log,
	}
}

// Source builds the first ray of an emitter
func (sys *System) Source(emitter physics.Body, info physics.OpticalInfo) Ray {
	color := info.Color
	color.A = 1
	return Ray{
		Start:           emitter.Pose.Position,
		Angle:           emitter.Pose.Rotation,
		Length:          math32.Inf(1),
		Strength:        1,
		Color:           color,
		Width:           sys.cfg.LaserWidth,
		StartDistance:   0,
		RefractiveIndex: parameter.AirIndex,
	}
}

// Trace runs one independent pass per emitter and returns drawable segments
func (sys *System) Trace(emitters Emitters) ([]Segment, Stats) {
	var stats Stats
	var rays []Ray

	for _, e := range emitters.Lasers() {
		info, err := emitters.OpticalInfo(e.Entity)
		if err != nil {
			sys.log.Debug("laser without color", zap.Uint64("entity", uint64(e.Entity)), zap.Error(err))
			continue
		}
		fade := e.Laser.FadeDistance
		if fade <= 0 {
			fade = sys.cfg.DefaultFadeDistance
		}

		p := NewPass(fade, physics.QueryFilter{Exclude: e.Entity}, sys.cfg.MaxRays)
		sys.solver.Shoot(p, sys.Source(e, info))

		rays = append(rays, p.Rays...)
		stats.Sources++
		stats.Rejected += p.Rejected
	}
	stats.Rays = len(rays)
	return Segments(rays), stats
}
