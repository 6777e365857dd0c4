package optics

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/prism/parameter"
)

// OpacityRefracted is the share of light transmitted into a medium
// exp(-log10(n)): 1 at n=1, falling toward 0 as n grows, 0 for a mirror (n=+Inf)
func OpacityRefracted(index float32) float32 {
	if math32.IsNaN(index) || index <= 0 {
		return 1
	}
	v := math32.Exp(-math32.Log10(index))
	return min(max(v, 0), 1)
}

// EndStrength is the strength left at the far end of r after linear fade
func EndStrength(r Ray, fadeDistance float32) float32 {
	remaining := fadeDistance - r.StartDistance
	if remaining <= 0 {
		return 0
	}
	s := r.Strength * (1 - r.Length/remaining)
	if math32.IsNaN(s) {
		return 0
	}
	return max(0, s)
}

// AdjustIndex shifts index by hue (fraction of the wheel), symmetric around 180°
func AdjustIndex(index, hue float32) float32 {
	return index + parameter.DispersionCoefficient*(hue*360-180)*index*index
}

// Refract applies Snell's law at a surface with normal angle normalAngle
// Returns false on total internal reflection
func Refract(incidence, normalAngle, indexRay, indexNew float32) (float32, bool) {
	newSin := math32.Sin(incidence) * indexRay / indexNew
	if math32.Abs(newSin) > 1 || math32.IsNaN(newSin) {
		return 0, false
	}
	return normalAngle + math32.Asin(newSin) + math32.Pi, true
}

// HueOpacity scales a dispersed hue by how much more or less it transmits than the base index
// Capped at 1 so a spectrum ray never outshines its share
func HueOpacity(baseIndex, hueIndex float32) float32 {
	base := OpacityRefracted(baseIndex)
	if base == 0 {
		return 0
	}
	return min(OpacityRefracted(hueIndex)/base, 1)
}
