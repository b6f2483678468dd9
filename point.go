package euclid

import "fmt"

// Point is a position in the Euclidean plane, with y pointing up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) Splat() (float64, float64) { return pt.X, pt.Y }

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Translate moves pt by o.
func (pt Point) Translate(o Vec2) Point { return Point(Vec2(pt).Add(o)) }

func (pt Point) Transform(aff Affine) Point { return aff.Apply(pt) }

// Sub is the displacement from o to pt. There is no Point.Add; move a
// point with [Point.Translate].
func (pt Point) Sub(o Point) Vec2 { return Vec2(pt).Sub(Vec2(o)) }

func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

func (pt Point) Midpoint(o Point) Point { return pt.Lerp(o, 0.5) }

func (pt Point) Distance(o Point) float64        { return pt.Sub(o).Hypot() }
func (pt Point) DistanceSquared(o Point) float64 { return pt.Sub(o).Hypot2() }

// ApproxEqual reports whether pt and o are closer than tol. Constructions
// compare with [Epsilon].
func (pt Point) ApproxEqual(o Point, tol float64) bool {
	return pt.Distance(o) < tol
}

// IsFinite reports whether neither coordinate is infinite or NaN. Points
// entering a construction must be finite.
func (pt Point) IsFinite() bool { return !pt.IsInf() && !pt.IsNaN() }

func (pt Point) IsInf() bool { return Vec2(pt).IsInf() }
func (pt Point) IsNaN() bool { return Vec2(pt).IsNaN() }
