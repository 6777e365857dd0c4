package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Entity is an opaque handle owned by the scene world
// Zero is never issued and means "no entity"
type Entity uint64

// Point is a 2D world or screen position
type Point = mgl32.Vec2

// Point3 is a 2D point lifted onto a stacking depth
type Point3 = mgl32.Vec3

// Transform is the pose of a body as reported by the physics world
type Transform struct {
	Position Point
	Rotation float32 // Radians, counter-clockwise
	Scale    Point
}

// BodyMode selects how the physics world integrates a body
type BodyMode uint8

const (
	BodyDynamic BodyMode = iota
	BodyFixed
	BodyKinematic
)

func (m BodyMode) String() string {
	switch m {
	case BodyDynamic:
		return "dynamic"
	case BodyFixed:
		return "fixed"
	case BodyKinematic:
		return "kinematic"
	}
	return "unknown"
}
