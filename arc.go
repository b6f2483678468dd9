package euclid

import "math"

// Arc is a portion of a circle, running anti-clockwise from StartAngle to
// EndAngle. Angles are in radians.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// At returns the point on the arc's circle at the given angle.
func (a Arc) At(angle float64) Point {
	return a.Center.Translate(VecFromAngle(angle).Mul(a.Radius))
}

// ContainsAngle reports whether angle falls within the arc's sweep. Arcs
// whose normalized end precedes their start wrap through zero.
func (a Arc) ContainsAngle(angle float64) bool {
	start := NormalizeAngle(a.StartAngle)
	end := NormalizeAngle(a.EndAngle)
	th := NormalizeAngle(angle)
	if start <= end {
		return th >= start && th <= end
	}
	return th >= start || th <= end
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return math.Abs(a.Radius * (a.EndAngle - a.StartAngle))
}

func (a Arc) Translate(v Vec2) Arc {
	a.Center = a.Center.Translate(v)
	return a
}

// Circle returns the full circle the arc lies on.
func (a Arc) Circle() Circle {
	return Circle{Center: a.Center, Radius: a.Radius}
}
