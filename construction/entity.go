package construction

import (
	"math"

	"honnef.co/go/euclid"
)

// Point is an identified position in a construction.
type Point struct {
	ID  string       `json:"id"`
	Pos euclid.Point `json:"position"`
	// Label is the display label. Empty means none.
	Label string `json:"label,omitempty"`
	// Constructed is true if the point was derived rather than placed.
	Constructed bool `json:"is_constructed"`
	// Dependencies lists the identifiers the point was derived from. It is
	// empty for placed points.
	Dependencies []string `json:"dependencies"`
}

// NewPoint returns a user-placed point. Its identifier is assigned when it is
// added to a Space.
func NewPoint(x, y float64, label string) Point {
	return Point{
		Pos:          euclid.Pt(x, y),
		Label:        label,
		Dependencies: []string{},
	}
}

// NewConstructedPoint returns a point derived from the entities in deps.
func NewConstructedPoint(x, y float64, label string, deps []string) Point {
	return Point{
		Pos:          euclid.Pt(x, y),
		Label:        label,
		Constructed:  true,
		Dependencies: deps,
	}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(o Point) float64 {
	return p.Pos.Distance(o.Pos)
}

// ApproxEqual reports whether p and o are closer than tol.
func (p Point) ApproxEqual(o Point, tol float64) bool {
	return p.DistanceTo(o) < tol
}

func (p Point) clone() Point {
	p.Dependencies = append([]string{}, p.Dependencies...)
	return p
}

// Line is the infinite line through two points.
type Line struct {
	ID           string   `json:"id"`
	Point1ID     string   `json:"point1_id"`
	Point2ID     string   `json:"point2_id"`
	Label        string   `json:"label,omitempty"`
	Dependencies []string `json:"dependencies"`
}

func newLine(id, p1, p2, label string) Line {
	return Line{
		ID:           id,
		Point1ID:     p1,
		Point2ID:     p2,
		Label:        label,
		Dependencies: []string{p1, p2},
	}
}

// Direction returns p2 − p1. p1 and p2 must be the line's resolved points.
func (l Line) Direction(p1, p2 Point) euclid.Vec2 {
	return p2.Pos.Sub(p1.Pos)
}

// ContainsPoint reports whether pt is collinear with the line's resolved
// points p1 and p2, within tol.
func (l Line) ContainsPoint(pt, p1, p2 Point, tol float64) bool {
	cross := pt.Pos.Sub(p1.Pos).Cross(p2.Pos.Sub(p1.Pos))
	return math.Abs(cross) < tol
}

func (l Line) clone() Line {
	l.Dependencies = append([]string{}, l.Dependencies...)
	return l
}

// Circle is the circle centered on one point and passing through another.
type Circle struct {
	ID            string   `json:"id"`
	CenterID      string   `json:"center_id"`
	RadiusPointID string   `json:"radius_point_id"`
	Label         string   `json:"label,omitempty"`
	Dependencies  []string `json:"dependencies"`
}

func newCircle(id, center, radiusPoint, label string) Circle {
	return Circle{
		ID:            id,
		CenterID:      center,
		RadiusPointID: radiusPoint,
		Label:         label,
		Dependencies:  []string{center, radiusPoint},
	}
}

// Radius returns the distance between the circle's resolved center and
// radius point.
func (c Circle) Radius(center, radiusPoint Point) float64 {
	return center.DistanceTo(radiusPoint)
}

// ContainsPoint reports whether pt lies on the circle within tol.
func (c Circle) ContainsPoint(pt, center, radiusPoint Point, tol float64) bool {
	return math.Abs(center.DistanceTo(pt)-c.Radius(center, radiusPoint)) < tol
}

// Shape returns the circle as a plain geometric value.
func (c Circle) Shape(center, radiusPoint Point) euclid.Circle {
	return euclid.CircleThrough(center.Pos, radiusPoint.Pos)
}

func (c Circle) clone() Circle {
	c.Dependencies = append([]string{}, c.Dependencies...)
	return c
}

// ObjectKind discriminates the variants of [Object].
type ObjectKind string

const (
	KindPoint  ObjectKind = "point"
	KindLine   ObjectKind = "line"
	KindCircle ObjectKind = "circle"
)

// Object is one entity of a construction. Exactly the field matching Kind is
// set.
type Object struct {
	Kind   ObjectKind `json:"kind"`
	Point  *Point     `json:"point,omitempty"`
	Line   *Line      `json:"line,omitempty"`
	Circle *Circle    `json:"circle,omitempty"`
}

// ID returns the identifier of the wrapped entity.
func (o Object) ID() string {
	switch o.Kind {
	case KindPoint:
		return o.Point.ID
	case KindLine:
		return o.Line.ID
	case KindCircle:
		return o.Circle.ID
	default:
		panic("construction: unknown object kind " + string(o.Kind))
	}
}

// Label returns the label of the wrapped entity.
func (o Object) Label() string {
	switch o.Kind {
	case KindPoint:
		return o.Point.Label
	case KindLine:
		return o.Line.Label
	case KindCircle:
		return o.Circle.Label
	default:
		panic("construction: unknown object kind " + string(o.Kind))
	}
}
