package euclid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Ellipse is the image of the unit circle under an affine transform. It is
// what a circle becomes under a transform that is not a similarity, such as
// a non-uniform scale.
type Ellipse struct {
	inner Affine
}

// NewEllipse returns the ellipse with the given center and radii whose first
// axis is rotated xRotation radians from the x axis.
func NewEllipse(center Point, radii Vec2, xRotation float64) Ellipse {
	return Ellipse{
		inner: Translate(Vec2(center)).
			Mul(Rotate(xRotation)).
			Mul(Scale(math.Abs(radii.X), math.Abs(radii.Y))),
	}
}

// NewEllipseFromAffine returns the image of the unit circle under aff.
func NewEllipseFromAffine(aff Affine) Ellipse {
	return Ellipse{inner: aff}
}

func NewEllipseFromCircle(c Circle) Ellipse {
	return NewEllipse(c.Center, Vec(c.Radius, c.Radius), 0)
}

// Transform returns the image of the circle under aff.
func (c Circle) Transform(aff Affine) Ellipse {
	return NewEllipseFromCircle(c).Transform(aff)
}

// Transform applies aff after the ellipse's own transform.
func (e Ellipse) Transform(aff Affine) Ellipse {
	return Ellipse{inner: aff.Mul(e.inner)}
}

func (e Ellipse) Translate(v Vec2) Ellipse {
	return Ellipse{inner: e.inner.ThenTranslate(v)}
}

// Center returns the center of the ellipse.
func (e Ellipse) Center() Point {
	return Point(e.inner.Translation())
}

// RadiiRotation returns the semi-axes, major first, and the angle of the
// major axis from the x axis in [0, π).
func (e Ellipse) RadiiRotation() (Vec2, float64) {
	lin := mat.NewDense(2, 2, []float64{
		e.inner.N0, e.inner.N2,
		e.inner.N1, e.inner.N3,
	})
	var svd mat.SVD
	if !svd.Factorize(lin, mat.SVDFull) {
		return Vec2{math.NaN(), math.NaN()}, math.NaN()
	}
	vals := svd.Values(nil)
	var u mat.Dense
	svd.UTo(&u)

	rot := math.Mod(math.Atan2(u.At(1, 0), u.At(0, 0)), math.Pi)
	if rot < 0 {
		rot += math.Pi
	}
	if math.Pi-rot < Epsilon {
		rot = 0
	}
	return Vec(vals[0], vals[1]), rot
}

func (e Ellipse) Radii() Vec2 {
	radii, _ := e.RadiiRotation()
	return radii
}

func (e Ellipse) Rotation() float64 {
	_, rot := e.RadiiRotation()
	return rot
}

// IsCircle reports whether both radii agree within tol and, if so, returns
// the ellipse as a circle.
func (e Ellipse) IsCircle(tol float64) (Circle, bool) {
	radii := e.Radii()
	if math.Abs(radii.X-radii.Y) >= tol {
		return Circle{}, false
	}
	return Circle{Center: e.Center(), Radius: (radii.X + radii.Y) / 2}, true
}

// Contains reports whether pt is strictly inside the ellipse. A degenerate
// ellipse contains nothing.
func (e Ellipse) Contains(pt Point) bool {
	inv, ok := e.inner.Inverse()
	if !ok {
		return false
	}
	return Vec2(inv.Apply(pt)).Hypot2() < 1
}

func (e Ellipse) Area() float64 {
	return math.Pi * math.Abs(e.inner.Determinant())
}

// BoundingBox returns the tight axis-aligned bounds. The images of the unit
// vectors (a, b) and (c, d) give the half extents √(a²+c²) and √(b²+d²).
func (e Ellipse) BoundingBox() Rect {
	a, b, c, d := e.inner.N0, e.inner.N1, e.inner.N2, e.inner.N3
	cx, cy := e.inner.N4, e.inner.N5
	rangeX := math.Sqrt(a*a + c*c)
	rangeY := math.Sqrt(b*b + d*d)
	return Rect{
		X0: cx - rangeX,
		Y0: cy - rangeY,
		X1: cx + rangeX,
		Y1: cy + rangeY,
	}
}

func (e Ellipse) IsInf() bool {
	return e.inner.IsInf()
}

func (e Ellipse) IsNaN() bool {
	return e.inner.IsNaN()
}
