package physics

import (
	"iter"

	"github.com/lixenwraith/prism/core"
)

// QueryFilter narrows point and ray queries
// The zero value accepts every collider
type QueryFilter struct {
	DynamicOnly    bool
	ExcludeSensors bool
	Exclude        core.Entity
}

// Allows reports whether a collider with the given traits passes the filter
func (f QueryFilter) Allows(e core.Entity, mode core.BodyMode, sensor bool) bool {
	if e == f.Exclude && f.Exclude != 0 {
		return false
	}
	if f.DynamicOnly && mode != core.BodyDynamic {
		return false
	}
	if f.ExcludeSensors && sensor {
		return false
	}
	return true
}

// RayHit is one collider crossed by a ray
// Normal is unit length and faces against the ray direction
type RayHit struct {
	Entity core.Entity
	Toi    float32
	Point  core.Point
	Normal core.Point
}

// OpticalInfo is the surface data a ray needs at a hit
type OpticalInfo struct {
	RefractiveIndex float32 // +Inf for a perfect mirror
	Color           core.HSVA
}

// LaserSource marks an entity as a light emitter
type LaserSource struct {
	FadeDistance float32
}

// SceneQuery answers geometric queries against the colliders of a scene
type SceneQuery interface {
	// PointIntersections yields colliders containing p
	PointIntersections(p core.Point, filter QueryFilter) iter.Seq[core.Entity]

	// RayIntersections yields every collider the ray crosses within maxDist
	// solid=true reports toi 0 for a ray starting inside a shape; solid=false reports the exit boundary
	RayIntersections(origin, dir core.Point, maxDist float32, solid bool, filter QueryFilter) iter.Seq[RayHit]
}

// Transforms reads and writes body poses
type Transforms interface {
	Transform(e core.Entity) (core.Transform, error)
	SetPosition(e core.Entity, p core.Point) error
	SetRotation(e core.Entity, angle float32) error
}

// BodyModes controls how a body is integrated
type BodyModes interface {
	BodyMode(e core.Entity) (core.BodyMode, error)
	SetBodyMode(e core.Entity, mode core.BodyMode) error
}

// Kinematics reads and writes body velocities
type Kinematics interface {
	Velocity(e core.Entity) (linear core.Point, angular float32, err error)
	SetVelocity(e core.Entity, linear core.Point, angular float32) error
}

// Joints creates constraints between bodies
// A zero b anchors a to the world at anchorB (world coordinates)
type Joints interface {
	CreateFixedJoint(a, b core.Entity, anchorA, anchorB core.Point) (core.Entity, error)
	CreateRevoluteJoint(a, b core.Entity, anchorA, anchorB core.Point) (core.Entity, error)
}

// Spawner creates and removes entities
type Spawner interface {
	// Spawn creates a physical body
	Spawn(def BodyDef) core.Entity

	// CreateEntity issues a bare handle with no body (overlay previews)
	CreateEntity() core.Entity

	// Despawn removes e, its children and joints attached to it
	Despawn(e core.Entity) error
}

// OpticalLookup resolves surface data for a hit entity
type OpticalLookup interface {
	OpticalInfo(e core.Entity) (OpticalInfo, error)
}

// DepthLookup returns the stacking depth assigned at spawn
type DepthLookup interface {
	Depth(e core.Entity) (float32, bool)
}

// Colliders reports collider traits
type Colliders interface {
	// IsSensor reports whether e is an intersection-only hitbox; false for unknown entities
	IsSensor(e core.Entity) bool
}

// Scene is the full collaborator surface the sandbox core consumes
type Scene interface {
	SceneQuery
	Transforms
	BodyModes
	Kinematics
	Joints
	Spawner
	OpticalLookup
	DepthLookup
	Colliders
}
