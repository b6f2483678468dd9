package euclid

import (
	"math"
	"slices"
)

// SideClass classifies a triangle by its side lengths.
type SideClass int

const (
	Scalene SideClass = iota
	Isosceles
	Equilateral
)

func (c SideClass) String() string {
	switch c {
	case Scalene:
		return "scalene"
	case Isosceles:
		return "isosceles"
	case Equilateral:
		return "equilateral"
	default:
		return "unknown"
	}
}

// AngleClass classifies a triangle by its largest angle.
type AngleClass int

const (
	Acute AngleClass = iota
	Right
	Obtuse
)

func (c AngleClass) String() string {
	switch c {
	case Acute:
		return "acute"
	case Right:
		return "right"
	case Obtuse:
		return "obtuse"
	default:
		return "unknown"
	}
}

// Triangle is a triangle given by its three vertices.
type Triangle struct {
	A, B, C Point
}

// Sides returns the lengths of the sides opposite A, B and C.
func (t Triangle) Sides() (a, b, c float64) {
	return t.B.Distance(t.C), t.C.Distance(t.A), t.A.Distance(t.B)
}

func (t Triangle) Area() float64 {
	return Polygon{t.A, t.B, t.C}.Area()
}

func (t Triangle) Perimeter() float64 {
	a, b, c := t.Sides()
	return a + b + c
}

// IsDegenerate reports whether the vertices are collinear within [Epsilon].
func (t Triangle) IsDegenerate() bool {
	return t.Area() < Epsilon
}

// Circumradius returns the radius of the circle through all three vertices.
// Degenerate triangles have an infinite circumradius.
func (t Triangle) Circumradius() float64 {
	area := t.Area()
	if area < Epsilon {
		return math.Inf(1)
	}
	a, b, c := t.Sides()
	return a * b * c / (4 * area)
}

// Inradius returns the radius of the inscribed circle.
func (t Triangle) Inradius() float64 {
	s := t.Perimeter() / 2
	if s == 0 {
		return 0
	}
	return t.Area() / s
}

// sortedSquares returns the squared side lengths in ascending order.
func (t Triangle) sortedSquares() [3]float64 {
	sq := [3]float64{
		t.B.DistanceSquared(t.C),
		t.C.DistanceSquared(t.A),
		t.A.DistanceSquared(t.B),
	}
	slices.Sort(sq[:])
	return sq
}

// IsRightAngled reports whether the squares of the two shorter sides sum to
// the square of the longest, within tol.
func (t Triangle) IsRightAngled(tol float64) bool {
	sq := t.sortedSquares()
	return math.Abs(sq[0]+sq[1]-sq[2]) < tol
}

// Classify returns the side and angle classes of the triangle. Side lengths
// and the Pythagorean comparison use tol.
func (t Triangle) Classify(tol float64) (SideClass, AngleClass) {
	a, b, c := t.Sides()
	ab := math.Abs(a-b) < tol
	bc := math.Abs(b-c) < tol
	ca := math.Abs(c-a) < tol

	side := Scalene
	switch {
	case ab && bc:
		side = Equilateral
	case ab || bc || ca:
		side = Isosceles
	}

	sq := t.sortedSquares()
	angle := Acute
	switch d := sq[0] + sq[1] - sq[2]; {
	case math.Abs(d) < tol:
		angle = Right
	case d < 0:
		angle = Obtuse
	}
	return side, angle
}
