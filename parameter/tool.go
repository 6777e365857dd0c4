package parameter

import "time"

// Gesture Detection
const (
	// LongPressThreshold separates a click from a hold
	LongPressThreshold = 200 * time.Millisecond

	// DragThresholdPx is the minimum screen drag for Box and Circle to spawn anything
	DragThresholdPx float32 = 6
)

// Rotation Helper
const (
	// RotateHelperRadius is the snap zone radius around the pivot, in screen units
	RotateHelperRadius float32 = 8

	// RotateSnapDegrees is the snap increment inside the helper radius
	RotateSnapDegrees float32 = 15

	// RotateHelperSegments is the vertex density of a full helper circle
	RotateHelperSegments = 48
)

// Spawned Objects
const (
	// DefaultRefractiveIndex is given to boxes and circles drawn by the user
	DefaultRefractiveIndex float32 = 1.5

	// HingeHitboxRadius is the sensor radius drawn around a hinge
	HingeHitboxRadius float32 = 0.3

	// LaserBodyRadius is the collider radius of a laser emitter
	LaserBodyRadius float32 = 0.4

	// DragStiffness converts pointer offset into body velocity for the Drag tool
	DragStiffness float32 = 12
)

// Spawn Palette
const (
	// SpawnHueStep advances the hue of each spawned body by the golden ratio conjugate
	SpawnHueStep float32 = 0.618034

	SpawnSaturation float32 = 0.45
	SpawnValue      float32 = 0.95
	SpawnAlpha      float32 = 0.55
)
