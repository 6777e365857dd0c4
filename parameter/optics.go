package parameter

// Ray Budget
const (
	// MaxRays caps the rays expanded for a single laser source per frame
	MaxRays = 10

	// StrengthEpsilon is the dimmest ray still drawn (below one 8-bit alpha step)
	StrengthEpsilon float32 = 0.9 / 255
)

// Ray Query
const (
	// RayMinToi rejects hits at the ray origin (self-intersection)
	RayMinToi float32 = 1e-4

	// RayFarDistance stands in for an unbounded ray length
	RayFarDistance float32 = 1e6
)

// Dispersion
const (
	// DispersionCoefficient scales the hue-dependent index shift, zero at hue 180°
	DispersionCoefficient float32 = 1.206e-4

	// RainbowHues is the number of spectrum rays an unsaturated beam splits into
	RainbowHues = 12

	// RainbowShare is the fraction of unsaturated transmitted light given to each hue
	RainbowShare float32 = 1.0 / 3
)

// Laser Defaults
const (
	// LaserWidth is the stroke width of a freshly emitted beam, world units
	LaserWidth float32 = 0.05

	// LaserFadeDistance is the optical path length of a freshly placed laser
	LaserFadeDistance float32 = 50

	// AirIndex is the refractive index a beam starts in
	AirIndex float32 = 1
)
