package construction

// StepKind discriminates the variants of [Step].
type StepKind string

const (
	StepAddPoint          StepKind = "add_point"
	StepConstructLine     StepKind = "construct_line"
	StepConstructCircle   StepKind = "construct_circle"
	StepFindIntersections StepKind = "find_intersections"
)

// Step records one mutation of a Space. Which fields are set depends on
// Kind:
//
//   - StepAddPoint: Point
//   - StepConstructLine: Line, Point1ID, Point2ID
//   - StepConstructCircle: Circle, CenterID, RadiusPointID
//   - StepFindIntersections: Obj1ID, Obj2ID
type Step struct {
	Kind StepKind `json:"kind"`

	Point  *Point  `json:"point,omitempty"`
	Line   *Line   `json:"line,omitempty"`
	Circle *Circle `json:"circle,omitempty"`

	Point1ID      string `json:"point1_id,omitempty"`
	Point2ID      string `json:"point2_id,omitempty"`
	CenterID      string `json:"center_id,omitempty"`
	RadiusPointID string `json:"radius_point_id,omitempty"`
	Obj1ID        string `json:"obj1_id,omitempty"`
	Obj2ID        string `json:"obj2_id,omitempty"`
}

func AddPointStep(p Point) Step {
	p = p.clone()
	return Step{Kind: StepAddPoint, Point: &p}
}

func ConstructLineStep(l Line) Step {
	l = l.clone()
	return Step{
		Kind:     StepConstructLine,
		Line:     &l,
		Point1ID: l.Point1ID,
		Point2ID: l.Point2ID,
	}
}

func ConstructCircleStep(c Circle) Step {
	c = c.clone()
	return Step{
		Kind:          StepConstructCircle,
		Circle:        &c,
		CenterID:      c.CenterID,
		RadiusPointID: c.RadiusPointID,
	}
}

func FindIntersectionsStep(obj1ID, obj2ID string) Step {
	return Step{Kind: StepFindIntersections, Obj1ID: obj1ID, Obj2ID: obj2ID}
}

// Dependencies returns the identifiers the step refers to.
func (s Step) Dependencies() []string {
	switch s.Kind {
	case StepAddPoint:
		return nil
	case StepConstructLine:
		return []string{s.Point1ID, s.Point2ID}
	case StepConstructCircle:
		return []string{s.CenterID, s.RadiusPointID}
	case StepFindIntersections:
		return []string{s.Obj1ID, s.Obj2ID}
	default:
		return nil
	}
}

func (s Step) clone() Step {
	if s.Point != nil {
		p := s.Point.clone()
		s.Point = &p
	}
	if s.Line != nil {
		l := s.Line.clone()
		s.Line = &l
	}
	if s.Circle != nil {
		c := s.Circle.clone()
		s.Circle = &c
	}
	return s
}
