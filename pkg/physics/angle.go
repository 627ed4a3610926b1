package physics

import "math"

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps any finite angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and tiny negatives can round up to exactly 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SignedDegrees maps any finite angle into (-180, 180].
func SignedDegrees(deg float64) float64 {
	deg = NormalizeDegrees(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// AngleDiff returns the signed shortest rotation from `from` to `to`, in (-180, 180].
func AngleDiff(to, from float64) float64 {
	return SignedDegrees(to - from)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
