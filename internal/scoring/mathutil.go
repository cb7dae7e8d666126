package scoring

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LogContribution returns a log10-dampened additive term for magnitude-type
// signals (revenue, stream counts, transaction volume): log10(x)*k capped at
// cap. Zero or negative inputs contribute nothing, and small positive inputs
// never contribute below zero.
func LogContribution(x, k, cap float64) float64 {
	if x <= 0 {
		return 0
	}
	return Clamp(math.Log10(x)*k, 0, cap)
}

// CapLinear returns a linear additive term x*k capped at cap. Used for
// ratio-type signals with a fixed multiplier.
func CapLinear(x, k, cap float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Min(x*k, cap)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
