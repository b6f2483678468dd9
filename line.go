package euclid

import "math"

// Segment represents a finite line segment.
type Segment struct {
	// The segment's start point.
	P0 Point
	// The segment's end point.
	P1 Point
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.P1.Sub(s.P0).Hypot()
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point {
	return s.P0.Midpoint(s.P1)
}

// Direction returns the unit vector from P0 towards P1.
func (s Segment) Direction() Vec2 {
	return s.P1.Sub(s.P0).Normalize()
}

// Eval returns the point at parameter t, with t = 0 at P0 and t = 1 at P1.
func (s Segment) Eval(t float64) Point {
	return s.P0.Lerp(s.P1, t)
}

// Contains reports whether pt lies on the segment: it must be collinear with
// the endpoints and fall between them, both within tol.
func (s Segment) Contains(pt Point, tol float64) bool {
	d := s.P1.Sub(s.P0)
	rel := pt.Sub(s.P0)
	if math.Abs(rel.Cross(d)) > tol {
		return false
	}
	dot := rel.Dot(d)
	return dot >= -tol && dot <= d.Hypot2()+tol
}

// CrossingPoint computes the point where two segments, if extended to
// infinity, would cross. It reports false for parallel segments.
func (s Segment) CrossingPoint(o Segment) (Point, bool) {
	ab := s.P1.Sub(s.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if math.Abs(pcd) < Epsilon {
		return Point{}, false
	}
	h := ab.Cross(s.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

// Nearest returns the squared distance from pt to the closest point on the
// segment, and that point's parameter.
func (s Segment) Nearest(pt Point) (distSq, t float64) {
	d := s.P1.Sub(s.P0)
	dotp := d.Dot(pt.Sub(s.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(s.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(s.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(s.Eval(t)).Hypot2()
		return dist, t
	}
}

func (s Segment) Transform(aff Affine) Segment {
	return Segment{
		P0: aff.Apply(s.P0),
		P1: aff.Apply(s.P1),
	}
}

func (s Segment) BoundingBox() Rect {
	return NewRectFromPoints(s.P0, s.P1)
}

// Ray is a half-line starting at Origin.
type Ray struct {
	Origin    Point
	Direction Vec2
}

// NewRay returns a ray from origin with its direction normalized.
func NewRay(origin Point, direction Vec2) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Point {
	return r.Origin.Translate(r.Direction.Mul(t))
}
