package vmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Pi     = math32.Pi
	HalfPi = math32.Pi / 2
	TwoPi  = 2 * math32.Pi
)

// --- Angles ---

// Direction returns the unit vector pointing along angle
func Direction(angle float32) mgl32.Vec2 {
	return mgl32.Vec2{math32.Cos(angle), math32.Sin(angle)}
}

// AngleOf returns atan2(v.y, v.x)
func AngleOf(v mgl32.Vec2) float32 {
	return math32.Atan2(v.Y(), v.X())
}

// WrapHalf folds an angle into [-π/2, π/2] by adding or subtracting π
// Used for incidence angles where the side of the surface is irrelevant
func WrapHalf(a float32) float32 {
	for a > HalfPi {
		a -= Pi
	}
	for a < -HalfPi {
		a += Pi
	}
	return a
}

// WrapPi folds an angle into (-π, π]
func WrapPi(a float32) float32 {
	a = math32.Mod(a, TwoPi)
	if a > Pi {
		a -= TwoPi
	} else if a <= -Pi {
		a += TwoPi
	}
	return a
}

// SweptAngle is the signed angle turning from vector a to vector b, in (-π, π]
// Zero when either vector is degenerate
func SweptAngle(a, b mgl32.Vec2) float32 {
	if a.LenSqr() == 0 || b.LenSqr() == 0 {
		return 0
	}
	cross := a.X()*b.Y() - a.Y()*b.X()
	return math32.Atan2(cross, a.Dot(b))
}

// Round rounds half away from zero
func Round(x float32) float32 {
	if x < 0 {
		return -math32.Floor(-x + 0.5)
	}
	return math32.Floor(x + 0.5)
}

// Snap rounds angle to the nearest multiple of step, ties away from zero
func Snap(angle, step float32) float32 {
	if step <= 0 {
		return angle
	}
	return Round(angle/step) * step
}

// RotationDelta computes the rotation a pointer drag applies around center
// Snaps to snapStep when the pointer is within snapRadius of the pivot
func RotationDelta(center, click, current mgl32.Vec2, snapRadius, snapStep float32) float32 {
	swept := SweptAngle(click.Sub(center), current.Sub(center))
	if current.Sub(center).Len() <= snapRadius {
		return Snap(swept, snapStep)
	}
	return swept
}

// --- Numerics ---

// Finite reports whether every argument is neither NaN nor infinite
func Finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FiniteVec reports whether both components of v are finite
func FiniteVec(v mgl32.Vec2) bool {
	return Finite(v.X(), v.Y())
}
