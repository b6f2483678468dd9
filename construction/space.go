package construction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"honnef.co/go/euclid"
)

// Space owns the points, lines and circles of one construction and the
// history of how they were made.
//
// The zero value is not usable; create spaces with [New] or [Replay].
type Space struct {
	points  map[string]Point
	lines   map[string]Line
	circles map[string]Circle

	pointOrder  []string
	lineOrder   []string
	circleOrder []string

	history []Step

	logger *zap.Logger
	newID  func() string
}

// Option configures a Space.
type Option func(*Space)

// WithLogger sets the logger that records committed and rejected
// mutations. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Space) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces [NewID] as the source of entity identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(s *Space) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New returns an empty construction space.
func New(opts ...Option) *Space {
	s := &Space{
		points:  make(map[string]Point),
		lines:   make(map[string]Line),
		circles: make(map[string]Circle),
		logger:  zap.NewNop(),
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Space) has(id string) bool {
	if _, ok := s.points[id]; ok {
		return true
	}
	if _, ok := s.lines[id]; ok {
		return true
	}
	_, ok := s.circles[id]
	return ok
}

func (s *Space) reject(op string, err error) error {
	fields := []zap.Field{zap.String("op", op)}
	var e *Error
	if errors.As(err, &e) {
		fields = append(fields,
			zap.String("kind", string(e.Kind)),
			zap.String("id", e.ID),
			zap.String("reason", e.Reason),
		)
	}
	s.logger.Warn("construction rejected", fields...)
	return err
}

// AddPoint adds p to the space and returns its identifier. An empty p.ID is
// replaced by a fresh identifier. The point must have finite coordinates and
// an unused identifier, and a constructed point must depend on at least one
// existing entity.
func (s *Space) AddPoint(p Point) (string, error) {
	if err := s.checkPoint(p); err != nil {
		return "", s.reject("add_point", err)
	}
	if p.ID == "" {
		p.ID = s.newID()
		if s.has(p.ID) {
			return "", s.reject("add_point", invalidConstruction("Identifier already in use: "+p.ID))
		}
	}
	p = p.clone()
	if p.Dependencies == nil {
		p.Dependencies = []string{}
	}

	s.history = append(s.history, AddPointStep(p))
	s.points[p.ID] = p
	s.pointOrder = append(s.pointOrder, p.ID)

	s.logger.Debug("point added",
		zap.String("id", p.ID),
		zap.Float64("x", p.Pos.X),
		zap.Float64("y", p.Pos.Y),
		zap.Bool("constructed", p.Constructed),
	)
	return p.ID, nil
}

func (s *Space) checkPoint(p Point) *Error {
	if !p.Pos.IsFinite() {
		return invalidConstruction("Point coordinates must be finite")
	}
	if p.ID != "" && s.has(p.ID) {
		return invalidConstruction("Identifier already in use: " + p.ID)
	}
	if p.Constructed {
		if len(p.Dependencies) == 0 {
			return invalidConstruction("Constructed point has no dependencies")
		}
		for _, dep := range p.Dependencies {
			if !s.has(dep) {
				return &Error{Kind: KindPointNotFound, ID: dep, Reason: "unknown dependency"}
			}
		}
	}
	return nil
}

// AddPointAt adds a user-placed point at (x, y).
func (s *Space) AddPointAt(x, y float64, label string) (string, error) {
	return s.AddPoint(NewPoint(x, y, label))
}

// checkPair validates the two point identifiers of a line or circle.
// Existence is checked before distinctness, id1 before id2.
func (s *Space) checkPair(id1, id2, sameReason string) *Error {
	if _, ok := s.points[id1]; !ok {
		return pointNotFound(id1)
	}
	if _, ok := s.points[id2]; !ok {
		return pointNotFound(id2)
	}
	if id1 == id2 {
		return invalidConstruction(sameReason)
	}
	return nil
}

// ConstructLine draws the line through two existing, distinct points.
func (s *Space) ConstructLine(point1ID, point2ID, label string) (string, error) {
	return s.insertLine(newLine(s.newID(), point1ID, point2ID, label))
}

func (s *Space) insertLine(l Line) (string, error) {
	if err := s.checkPair(l.Point1ID, l.Point2ID, "Cannot create line with identical points"); err != nil {
		return "", s.reject("construct_line", err)
	}
	if s.has(l.ID) {
		return "", s.reject("construct_line", invalidConstruction("Identifier already in use: "+l.ID))
	}
	l.Dependencies = []string{l.Point1ID, l.Point2ID}

	s.history = append(s.history, ConstructLineStep(l))
	s.lines[l.ID] = l
	s.lineOrder = append(s.lineOrder, l.ID)

	s.logger.Debug("line constructed",
		zap.String("id", l.ID),
		zap.String("point1", l.Point1ID),
		zap.String("point2", l.Point2ID),
	)
	return l.ID, nil
}

// ConstructCircle draws the circle centered on one existing point and
// passing through another.
func (s *Space) ConstructCircle(centerID, radiusPointID, label string) (string, error) {
	return s.insertCircle(newCircle(s.newID(), centerID, radiusPointID, label))
}

func (s *Space) insertCircle(c Circle) (string, error) {
	if err := s.checkPair(c.CenterID, c.RadiusPointID, "Center and radius point cannot be the same"); err != nil {
		return "", s.reject("construct_circle", err)
	}
	if s.has(c.ID) {
		return "", s.reject("construct_circle", invalidConstruction("Identifier already in use: "+c.ID))
	}
	c.Dependencies = []string{c.CenterID, c.RadiusPointID}

	s.history = append(s.history, ConstructCircleStep(c))
	s.circles[c.ID] = c
	s.circleOrder = append(s.circleOrder, c.ID)

	s.logger.Debug("circle constructed",
		zap.String("id", c.ID),
		zap.String("center", c.CenterID),
		zap.String("radius_point", c.RadiusPointID),
	)
	return c.ID, nil
}

// mustPoint resolves a point referenced by a stored line or circle. Creation
// already checked that it exists, so a miss means the indexes are corrupt.
func (s *Space) mustPoint(id string) Point {
	p, ok := s.points[id]
	if !ok {
		panic("construction: dangling point reference " + id)
	}
	return p
}

// intersect computes the intersection points of two stored objects without
// adding them. Points that overflow float64 make the whole result an error.
func (s *Space) intersect(obj1ID, obj2ID string) ([]Point, *Error) {
	l1, isLine1 := s.lines[obj1ID]
	l2, isLine2 := s.lines[obj2ID]
	c1, isCircle1 := s.circles[obj1ID]
	c2, isCircle2 := s.circles[obj2ID]

	var pts []Point
	switch {
	case isLine1 && isLine2:
		pts = LineLine(
			l1, s.mustPoint(l1.Point1ID), s.mustPoint(l1.Point2ID),
			l2, s.mustPoint(l2.Point1ID), s.mustPoint(l2.Point2ID),
		)
	case isLine1 && isCircle2:
		pts = LineCircle(
			l1, s.mustPoint(l1.Point1ID), s.mustPoint(l1.Point2ID),
			c2, s.mustPoint(c2.CenterID), s.mustPoint(c2.RadiusPointID),
		)
	case isCircle1 && isLine2:
		pts = LineCircle(
			l2, s.mustPoint(l2.Point1ID), s.mustPoint(l2.Point2ID),
			c1, s.mustPoint(c1.CenterID), s.mustPoint(c1.RadiusPointID),
		)
	case isCircle1 && isCircle2:
		pts = CircleCircle(
			c1, s.mustPoint(c1.CenterID), s.mustPoint(c1.RadiusPointID),
			c2, s.mustPoint(c2.CenterID), s.mustPoint(c2.RadiusPointID),
		)
	default:
		return nil, invalidConstruction("Invalid object IDs for intersection")
	}
	if !allFinite(pts) {
		return nil, invalidConstruction("Intersection is not representable")
	}
	return pts, nil
}

// FindIntersections intersects two lines or circles and adds every resulting
// point to the space, each with its own history step. An empty result is not
// an error; see [Space.RequireIntersections].
func (s *Space) FindIntersections(obj1ID, obj2ID string) ([]Point, error) {
	pts, err := s.intersect(obj1ID, obj2ID)
	if err != nil {
		return nil, s.reject("find_intersections", err)
	}
	return s.addIntersections(obj1ID, obj2ID, pts)
}

// RequireIntersections is like FindIntersections but fails with
// [ErrNoIntersections], leaving the space unchanged, when the objects do not
// meet.
func (s *Space) RequireIntersections(obj1ID, obj2ID string) ([]Point, error) {
	pts, err := s.intersect(obj1ID, obj2ID)
	if err != nil {
		return nil, s.reject("find_intersections", err)
	}
	if len(pts) == 0 {
		return nil, ErrNoIntersections
	}
	return s.addIntersections(obj1ID, obj2ID, pts)
}

// addIntersections adds all of pts or none of them.
func (s *Space) addIntersections(obj1ID, obj2ID string, pts []Point) ([]Point, error) {
	nPoints, nHistory := len(s.pointOrder), len(s.history)
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		id, err := s.AddPoint(p)
		if err != nil {
			for _, id := range s.pointOrder[nPoints:] {
				delete(s.points, id)
			}
			s.pointOrder = s.pointOrder[:nPoints]
			s.history = s.history[:nHistory]
			return nil, err
		}
		out = append(out, s.points[id].clone())
	}

	s.logger.Debug("intersections found",
		zap.String("obj1", obj1ID),
		zap.String("obj2", obj2ID),
		zap.Int("count", len(out)),
	)
	return out, nil
}

// ValidateStep reports whether step could be applied to the space as it is
// now. It does not modify the space. A find_intersections step whose points
// would overflow passes here and fails in [Space.Apply].
func (s *Space) ValidateStep(step Step) bool {
	return s.checkStep(step) == nil
}

func (s *Space) checkStep(step Step) *Error {
	switch step.Kind {
	case StepAddPoint:
		if step.Point == nil {
			return invalidConstruction("add_point step has no point")
		}
		return s.checkPoint(*step.Point)
	case StepConstructLine:
		if step.Line != nil && step.Line.ID != "" && s.has(step.Line.ID) {
			return invalidConstruction("Identifier already in use: " + step.Line.ID)
		}
		return s.checkPair(step.Point1ID, step.Point2ID, "Cannot create line with identical points")
	case StepConstructCircle:
		if step.Circle != nil && step.Circle.ID != "" && s.has(step.Circle.ID) {
			return invalidConstruction("Identifier already in use: " + step.Circle.ID)
		}
		return s.checkPair(step.CenterID, step.RadiusPointID, "Center and radius point cannot be the same")
	case StepFindIntersections:
		if !s.isCurve(step.Obj1ID) || !s.isCurve(step.Obj2ID) {
			return invalidConstruction("Invalid object IDs for intersection")
		}
		return nil
	default:
		return invalidConstruction(fmt.Sprintf("unknown step kind %q", step.Kind))
	}
}

func allFinite(pts []Point) bool {
	for _, p := range pts {
		if !p.Pos.IsFinite() {
			return false
		}
	}
	return true
}

func (s *Space) isCurve(id string) bool {
	if _, ok := s.lines[id]; ok {
		return true
	}
	_, ok := s.circles[id]
	return ok
}

// AllObjects returns every entity: points, then lines, then circles, each in
// insertion order.
func (s *Space) AllObjects() []Object {
	out := make([]Object, 0, s.ObjectCount())
	for _, p := range s.Points() {
		out = append(out, Object{Kind: KindPoint, Point: &p})
	}
	for _, l := range s.Lines() {
		out = append(out, Object{Kind: KindLine, Line: &l})
	}
	for _, c := range s.Circles() {
		out = append(out, Object{Kind: KindCircle, Circle: &c})
	}
	return out
}

// Clear removes every entity and the whole history.
func (s *Space) Clear() {
	clear(s.points)
	clear(s.lines)
	clear(s.circles)
	s.pointOrder = nil
	s.lineOrder = nil
	s.circleOrder = nil
	s.history = nil
	s.logger.Debug("space cleared")
}

// ObjectCount returns the number of points, lines and circles.
func (s *Space) ObjectCount() int {
	return len(s.points) + len(s.lines) + len(s.circles)
}

// Len returns the length of the history.
func (s *Space) Len() int {
	return len(s.history)
}

// History returns a copy of the history.
func (s *Space) History() []Step {
	out := make([]Step, len(s.history))
	for i, step := range s.history {
		out[i] = step.clone()
	}
	return out
}

func (s *Space) Point(id string) (Point, bool) {
	p, ok := s.points[id]
	if !ok {
		return Point{}, false
	}
	return p.clone(), true
}

func (s *Space) Line(id string) (Line, bool) {
	l, ok := s.lines[id]
	if !ok {
		return Line{}, false
	}
	return l.clone(), true
}

func (s *Space) Circle(id string) (Circle, bool) {
	c, ok := s.circles[id]
	if !ok {
		return Circle{}, false
	}
	return c.clone(), true
}

// Points returns all points in insertion order.
func (s *Space) Points() []Point {
	out := make([]Point, len(s.pointOrder))
	for i, id := range s.pointOrder {
		out[i] = s.points[id].clone()
	}
	return out
}

// Lines returns all lines in insertion order.
func (s *Space) Lines() []Line {
	out := make([]Line, len(s.lineOrder))
	for i, id := range s.lineOrder {
		out[i] = s.lines[id].clone()
	}
	return out
}

// Circles returns all circles in insertion order.
func (s *Space) Circles() []Circle {
	out := make([]Circle, len(s.circleOrder))
	for i, id := range s.circleOrder {
		out[i] = s.circles[id].clone()
	}
	return out
}

// CircleShape resolves a stored circle to its center and radius.
func (s *Space) CircleShape(id string) (euclid.Circle, bool) {
	c, ok := s.circles[id]
	if !ok {
		return euclid.Circle{}, false
	}
	return c.Shape(s.mustPoint(c.CenterID), s.mustPoint(c.RadiusPointID)), true
}

// Circumcenter adds the circumcenter of three existing points to the space.
func (s *Space) Circumcenter(id1, id2, id3 string) (Point, error) {
	var pts [3]Point
	for i, id := range []string{id1, id2, id3} {
		p, ok := s.points[id]
		if !ok {
			return Point{}, s.reject("circumcenter", pointNotFound(id))
		}
		pts[i] = p
	}
	cc, err := Circumcenter(pts[0], pts[1], pts[2])
	if err != nil {
		return Point{}, s.reject("circumcenter", err)
	}
	id, err := s.AddPoint(cc)
	if err != nil {
		return Point{}, err
	}
	return s.points[id].clone(), nil
}
