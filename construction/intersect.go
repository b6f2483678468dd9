package construction

import (
	"math"

	"honnef.co/go/euclid"
)

// The intersection functions take the two entities together with their
// resolved points and return new, unidentified constructed points whose
// dependencies are the two entity identifiers. An empty result means there
// is no finite set of intersection points: the objects are apart, parallel,
// coincident or identical.
//
// Coordinates near the float64 limits can overflow; the results then hold
// infinite or NaN coordinates. [Space] rejects such results as a whole.

// LineLine intersects two lines.
func LineLine(l1 Line, p1a, p1b Point, l2 Line, p2a, p2b Point) []Point {
	dir1 := p1b.Pos.Sub(p1a.Pos)
	dir2 := p2b.Pos.Sub(p2a.Pos)

	det := dir1.Cross(dir2)
	if math.Abs(det) < euclid.Epsilon {
		return nil
	}

	diff := p2a.Pos.Sub(p1a.Pos)
	t := diff.Cross(dir2) / det
	pt := p1a.Pos.Translate(dir1.Mul(t))
	return []Point{
		NewConstructedPoint(pt.X, pt.Y, "", []string{l1.ID, l2.ID}),
	}
}

// LineCircle intersects a line with a circle. Of two secant points, the one
// further along the direction from p1 to p2 comes first.
func LineCircle(l Line, p1, p2 Point, c Circle, center, radiusPoint Point) []Point {
	r := c.Radius(center, radiusPoint)
	dir := p2.Pos.Sub(p1.Pos).Normalize()

	proj := center.Pos.Sub(p1.Pos).Dot(dir)
	foot := p1.Pos.Translate(dir.Mul(proj))
	dist := center.Pos.Distance(foot)

	deps := func() []string { return []string{l.ID, c.ID} }
	switch {
	case dist > r+euclid.Epsilon:
		return nil
	case math.Abs(dist-r) < euclid.Epsilon:
		return []Point{NewConstructedPoint(foot.X, foot.Y, "", deps())}
	case dist < r:
		// Factored so that large radii do not overflow.
		h := math.Sqrt(r-dist) * math.Sqrt(r+dist)
		a := foot.Translate(dir.Mul(h))
		b := foot.Translate(dir.Mul(-h))
		return []Point{
			NewConstructedPoint(a.X, a.Y, "", deps()),
			NewConstructedPoint(b.X, b.Y, "", deps()),
		}
	default:
		return nil
	}
}

// CircleCircle intersects two circles. The two points of a proper crossing
// are ordered left then right of the direction from the first center to the
// second.
func CircleCircle(c1 Circle, center1, radiusPoint1 Point, c2 Circle, center2, radiusPoint2 Point) []Point {
	r1 := c1.Radius(center1, radiusPoint1)
	r2 := c2.Radius(center2, radiusPoint2)
	d := center1.DistanceTo(center2)

	if d > r1+r2+euclid.Epsilon {
		return nil
	}
	if d < math.Abs(r1-r2)-euclid.Epsilon {
		return nil
	}
	if d < euclid.Epsilon {
		// Concentric: identical, or nested without crossing.
		return nil
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		// Rounding leaves r1² a hair below a² at tangency. Anything more
		// means the circles do not cross.
		if h2 < -euclid.Epsilon*max(1, r1*r1) {
			return nil
		}
		h2 = 0
	}
	h := math.Sqrt(h2)
	dir := center2.Pos.Sub(center1.Pos).Div(d)
	p := center1.Pos.Translate(dir.Mul(a))

	deps := func() []string { return []string{c1.ID, c2.ID} }
	if h < euclid.Epsilon {
		return []Point{NewConstructedPoint(p.X, p.Y, "", deps())}
	}

	perp := dir.Perp()
	a1 := p.Translate(perp.Mul(h))
	a2 := p.Translate(perp.Mul(-h))
	return []Point{
		NewConstructedPoint(a1.X, a1.Y, "", deps()),
		NewConstructedPoint(a2.X, a2.Y, "", deps()),
	}
}

// AreCollinear reports whether the triangle p1 p2 p3 has an area below tol.
func AreCollinear(p1, p2, p3 Point, tol float64) bool {
	area := 0.5 * p2.Pos.Sub(p1.Pos).Cross(p3.Pos.Sub(p1.Pos))
	return math.Abs(area) < tol
}

// PerpendicularBisector returns a point on the perpendicular bisector of p1
// and p2, namely their midpoint, and the bisector's unit direction.
func PerpendicularBisector(p1, p2 Point) (euclid.Point, euclid.Vec2) {
	mid := p1.Pos.Midpoint(p2.Pos)
	dir := p2.Pos.Sub(p1.Pos).Perp().Normalize()
	return mid, dir
}

// AngleBisector returns the unit direction bisecting the angle p1 vertex p2.
// The result is NaN when either arm has zero length or the arms are opposite.
func AngleBisector(p1, vertex, p2 Point) euclid.Vec2 {
	v1 := p1.Pos.Sub(vertex.Pos).Normalize()
	v2 := p2.Pos.Sub(vertex.Pos).Normalize()
	return v1.Add(v2).Normalize()
}

// Circumcenter returns the constructed center of the circle through p1, p2
// and p3, labeled "Circumcenter" and depending on the three points.
func Circumcenter(p1, p2, p3 Point) (Point, error) {
	if AreCollinear(p1, p2, p3, euclid.Epsilon) {
		return Point{}, invalidConstruction("Cannot find circumcenter of collinear points")
	}

	ax, ay := p1.Pos.Splat()
	bx, by := p2.Pos.Splat()
	cx, cy := p3.Pos.Splat()

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d

	return NewConstructedPoint(ux, uy, "Circumcenter", []string{p1.ID, p2.ID, p3.ID}), nil
}
