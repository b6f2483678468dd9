package euclid

import "math"

// Epsilon is the tolerance below which two quantities are treated as equal
// for geometric decisions.
const Epsilon = 1e-10

// ApproxEqual reports whether |a−b| < [Epsilon].
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// ApproxEqualTol reports whether |a−b| < tol.
func ApproxEqualTol(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// ApproxZero reports whether |a| < [Epsilon].
func ApproxZero(a float64) bool {
	return math.Abs(a) < Epsilon
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle maps th into [0, 2π).
func NormalizeAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// NormalizeAngleSigned maps th into (−π, π].
func NormalizeAngleSigned(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th > math.Pi {
		th -= 2 * math.Pi
	} else if th <= -math.Pi {
		th += 2 * math.Pi
	}
	return th
}

// AngleBetween returns the unsigned angle between two vectors, in [0, π].
// It returns 0 if either vector has zero length.
func AngleBetween(v1, v2 Vec2) float64 {
	lengths := v1.Hypot() * v2.Hypot()
	if lengths < Epsilon {
		return 0
	}
	// Clamp so rounding can't push acos out of its domain.
	c := max(-1, min(1, v1.Dot(v2)/lengths))
	return math.Acos(c)
}

// AngleAt returns the angle p1–vertex–p2 measured at vertex.
func AngleAt(p1, vertex, p2 Point) float64 {
	return AngleBetween(p1.Sub(vertex), p2.Sub(vertex))
}
