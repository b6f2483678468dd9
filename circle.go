package euclid

import "math"

// Circle is a circle given by its center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// CircleThrough returns the circle centered at center passing through pt,
// which is how a compass draws it.
func CircleThrough(center, pt Point) Circle {
	return Circle{Center: center, Radius: center.Distance(pt)}
}

// Contains reports whether pt is strictly inside the circle.
func (c Circle) Contains(pt Point) bool {
	return pt.Sub(c.Center).Hypot2() < c.Radius*c.Radius
}

// OnCircle reports whether pt lies on the circumference within tol.
func (c Circle) OnCircle(pt Point, tol float64) bool {
	return math.Abs(c.Center.Distance(pt)-math.Abs(c.Radius)) < tol
}

// Arc returns the arc of this circle between two angles.
func (c Circle) Arc(startAngle, endAngle float64) Arc {
	return Arc{
		Center:     c.Center,
		Radius:     c.Radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}
}

func (c Circle) IsInf() bool {
	return c.Center.IsInf() || math.IsInf(c.Radius, 0)
}

func (c Circle) IsNaN() bool {
	return c.Center.IsNaN() || math.IsNaN(c.Radius)
}

func (c Circle) Translate(v Vec2) Circle {
	return Circle{
		Center: c.Center.Translate(v),
		Radius: c.Radius,
	}
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	x := c.Center.X
	y := c.Center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

func (c Circle) Perimeter() float64 {
	return math.Abs(2 * math.Pi * c.Radius)
}
