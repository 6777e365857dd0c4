package parameter

// Reference World Integration
const (
	// Gravity is the default downward acceleration, world units per second squared
	Gravity float32 = 0

	// LinearDamping is the fraction of velocity kept per second
	LinearDamping float32 = 0.2

	// AngularDamping is the fraction of angular velocity kept per second
	AngularDamping float32 = 0.2
)
