package physics

import (
	"iter"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/vmath"
)

// BodyDef describes a body to spawn
type BodyDef struct {
	Shape  Shape
	Pose   core.Transform
	Mode   core.BodyMode
	Sensor bool // Reports intersections only; used for UI hitboxes
	Parent core.Entity
	Depth  float32

	// Optical is nil to inherit from the parent chain
	Optical *OpticalInfo
	Laser   *LaserSource
}

// Body is the stored state of a spawned body
type Body struct {
	Entity core.Entity
	BodyDef

	Velocity        core.Point
	AngularVelocity float32

	local core.Transform // Pose relative to Parent, fixed at spawn
}

// JointKind distinguishes weld and hinge constraints
type JointKind uint8

const (
	JointFixed JointKind = iota
	JointRevolute
)

// Joint is a recorded constraint; B is zero for world-anchored joints
type Joint struct {
	Entity  core.Entity
	Kind    JointKind
	A, B    core.Entity
	AnchorA core.Point
	AnchorB core.Point
}

// World is an in-memory scene of circle and box bodies
// It integrates velocities but does not solve contacts or joint constraints
type World struct {
	mu      sync.RWMutex
	nextID  atomic.Uint64
	bodies  map[core.Entity]*Body
	bare    map[core.Entity]struct{}
	joints  map[core.Entity]*Joint
	Gravity core.Point
}

var _ Scene = (*World)(nil)

// NewWorld creates an empty world with the given downward gravity
func NewWorld(gravity float32) *World {
	return &World{
		bodies:  make(map[core.Entity]*Body),
		bare:    make(map[core.Entity]struct{}),
		joints:  make(map[core.Entity]*Joint),
		Gravity: core.Point{0, -gravity},
	}
}

func (w *World) issue() core.Entity {
	return core.Entity(w.nextID.Add(1))
}

// --- Spawner ---

func (w *World) Spawn(def BodyDef) core.Entity {
	if def.Pose.Scale == (core.Point{}) {
		def.Pose.Scale = core.Point{1, 1}
	}
	e := w.issue()

	w.mu.Lock()
	b := &Body{Entity: e, BodyDef: def}
	if p, ok := w.bodies[def.Parent]; ok {
		b.local = core.Transform{
			Position: toLocal(p.Pose, def.Pose.Position),
			Rotation: def.Pose.Rotation - p.Pose.Rotation,
		}
	}
	w.bodies[e] = b
	w.mu.Unlock()
	return e
}

func (w *World) CreateEntity() core.Entity {
	e := w.issue()
	w.mu.Lock()
	w.bare[e] = struct{}{}
	w.mu.Unlock()
	return e
}

func (w *World) Despawn(e core.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.bare[e]; ok {
		delete(w.bare, e)
		return nil
	}
	if _, ok := w.bodies[e]; !ok {
		if _, ok := w.joints[e]; ok {
			delete(w.joints, e)
			return nil
		}
		return errors.Wrapf(core.ErrStaleEntity, "despawn %d", e)
	}
	w.despawnLocked(e)
	return nil
}

func (w *World) despawnLocked(e core.Entity) {
	delete(w.bodies, e)
	for id, j := range w.joints {
		if j.A == e || j.B == e {
			delete(w.joints, id)
		}
	}
	for id, b := range w.bodies {
		if b.Parent == e {
			w.despawnLocked(id)
		}
	}
}

// Alive reports whether e is a live body or bare handle
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, body := w.bodies[e]
	_, bare := w.bare[e]
	return body || bare
}

// --- Transforms, modes, kinematics ---

func (w *World) body(e core.Entity) (*Body, error) {
	b, ok := w.bodies[e]
	if !ok {
		return nil, errors.Wrapf(core.ErrStaleEntity, "body %d", e)
	}
	return b, nil
}

func (w *World) Transform(e core.Entity) (core.Transform, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, err := w.body(e)
	if err != nil {
		return core.Transform{}, err
	}
	return b.Pose, nil
}

func (w *World) SetPosition(e core.Entity, p core.Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.body(e)
	if err != nil {
		return err
	}
	b.Pose.Position = p
	w.followLocked()
	return nil
}

func (w *World) SetRotation(e core.Entity, angle float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.body(e)
	if err != nil {
		return err
	}
	b.Pose.Rotation = angle
	w.followLocked()
	return nil
}

func (w *World) BodyMode(e core.Entity) (core.BodyMode, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, err := w.body(e)
	if err != nil {
		return 0, err
	}
	return b.Mode, nil
}

// SetBodyMode switches integration mode; leaving dynamic zeroes velocity
func (w *World) SetBodyMode(e core.Entity, mode core.BodyMode) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.body(e)
	if err != nil {
		return err
	}
	if mode != core.BodyDynamic {
		b.Velocity = core.Point{}
		b.AngularVelocity = 0
	}
	b.Mode = mode
	return nil
}

func (w *World) Velocity(e core.Entity) (core.Point, float32, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, err := w.body(e)
	if err != nil {
		return core.Point{}, 0, err
	}
	return b.Velocity, b.AngularVelocity, nil
}

func (w *World) SetVelocity(e core.Entity, linear core.Point, angular float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.body(e)
	if err != nil {
		return err
	}
	b.Velocity = linear
	b.AngularVelocity = angular
	return nil
}

// --- Joints ---

func (w *World) CreateFixedJoint(a, b core.Entity, anchorA, anchorB core.Point) (core.Entity, error) {
	return w.createJoint(JointFixed, a, b, anchorA, anchorB)
}

func (w *World) CreateRevoluteJoint(a, b core.Entity, anchorA, anchorB core.Point) (core.Entity, error) {
	return w.createJoint(JointRevolute, a, b, anchorA, anchorB)
}

func (w *World) createJoint(kind JointKind, a, b core.Entity, anchorA, anchorB core.Point) (core.Entity, error) {
	id := w.issue()

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.body(a); err != nil {
		return 0, err
	}
	if b != 0 {
		if _, err := w.body(b); err != nil {
			return 0, err
		}
	}
	w.joints[id] = &Joint{Entity: id, Kind: kind, A: a, B: b, AnchorA: anchorA, AnchorB: anchorB}
	return id, nil
}

// Joints returns a snapshot ordered by entity
func (w *World) Joints() []Joint {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Joint, 0, len(w.joints))
	for _, j := range w.joints {
		out = append(out, *j)
	}
	slices.SortFunc(out, func(a, b Joint) int { return compareEntity(a.Entity, b.Entity) })
	return out
}

// --- Optics and depth ---

// OpticalInfo resolves the nearest optical record up the parent chain
func (w *World) OpticalInfo(e core.Entity) (OpticalInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if _, err := w.body(e); err != nil {
		return OpticalInfo{}, err
	}
	return core.ResolveFrom(e,
		func(id core.Entity) (core.Entity, bool) {
			b, ok := w.bodies[id]
			if !ok || b.Parent == 0 {
				return 0, false
			}
			return b.Parent, true
		},
		func(id core.Entity) (OpticalInfo, bool) {
			b, ok := w.bodies[id]
			if !ok || b.Optical == nil {
				return OpticalInfo{}, false
			}
			return *b.Optical, true
		},
	)
}

func (w *World) Depth(e core.Entity) (float32, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[e]
	if !ok {
		return 0, false
	}
	return b.Depth, true
}

func (w *World) IsSensor(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[e]
	return ok && b.Sensor
}

// Bodies returns a snapshot ordered by depth, back to front
func (w *World) Bodies() []Body {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Body) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return compareEntity(a.Entity, b.Entity)
	})
	return out
}

// Lasers returns the emitters in entity order
func (w *World) Lasers() []Body {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []Body
	for _, b := range w.bodies {
		if b.Laser != nil {
			out = append(out, *b)
		}
	}
	slices.SortFunc(out, func(a, b Body) int { return compareEntity(a.Entity, b.Entity) })
	return out
}

// --- Queries ---

func (w *World) sortedBodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Body) int { return compareEntity(a.Entity, b.Entity) })
	return out
}

func (w *World) PointIntersections(p core.Point, filter QueryFilter) iter.Seq[core.Entity] {
	w.mu.RLock()
	var hits []core.Entity
	for _, b := range w.sortedBodies() {
		if !filter.Allows(b.Entity, b.Mode, b.Sensor) {
			continue
		}
		local := toLocal(b.Pose, p)
		if b.Shape.scaled(b.Pose.Scale).contains(local) {
			hits = append(hits, b.Entity)
		}
	}
	w.mu.RUnlock()
	return slices.Values(hits)
}

func (w *World) RayIntersections(origin, dir core.Point, maxDist float32, solid bool, filter QueryFilter) iter.Seq[RayHit] {
	if dir.LenSqr() == 0 {
		return func(func(RayHit) bool) {}
	}
	dir = dir.Normalize()

	w.mu.RLock()
	var hits []RayHit
	for _, b := range w.sortedBodies() {
		if !filter.Allows(b.Entity, b.Mode, b.Sensor) {
			continue
		}
		o := toLocal(b.Pose, origin)
		d := vmath.Rotate(dir, -b.Pose.Rotation)
		toi, n, _, ok := b.Shape.scaled(b.Pose.Scale).castLocal(o, d, solid)
		if !ok || toi > maxDist {
			continue
		}
		normal := vmath.Rotate(n, b.Pose.Rotation)
		if normal.Dot(dir) > 0 {
			normal = normal.Mul(-1)
		}
		hits = append(hits, RayHit{
			Entity: b.Entity,
			Toi:    toi,
			Point:  origin.Add(dir.Mul(toi)),
			Normal: normal,
		})
	}
	w.mu.RUnlock()
	return slices.Values(hits)
}

func toLocal(pose core.Transform, p core.Point) core.Point {
	return vmath.Rotate(p.Sub(pose.Position), -pose.Rotation)
}

// --- Integration ---

// Step advances dynamic and kinematic bodies by dt
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt > parameter.MaxFrameStep {
		dt = parameter.MaxFrameStep
	}
	s := float32(dt.Seconds())
	linKeep := max(0, 1-parameter.LinearDamping*s)
	angKeep := max(0, 1-parameter.AngularDamping*s)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range w.bodies {
		if _, attached := w.bodies[b.Parent]; attached {
			continue
		}
		switch b.Mode {
		case core.BodyFixed:
			continue
		case core.BodyDynamic:
			b.Velocity = b.Velocity.Add(w.Gravity.Mul(s)).Mul(linKeep)
			b.AngularVelocity *= angKeep
		}
		b.Pose.Position = b.Pose.Position.Add(b.Velocity.Mul(s))
		b.Pose.Rotation += b.AngularVelocity * s
	}
	w.followLocked()
}

// followLocked re-poses every child from its parent's pose
// A parent is always issued before its children, so ascending entity order settles chains in one pass
func (w *World) followLocked() {
	for _, b := range w.sortedBodies() {
		p, ok := w.bodies[b.Parent]
		if !ok {
			continue
		}
		b.Pose.Position = p.Pose.Position.Add(vmath.Rotate(b.local.Position, p.Pose.Rotation))
		b.Pose.Rotation = p.Pose.Rotation + b.local.Rotation
	}
}

func compareEntity(a, b core.Entity) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
