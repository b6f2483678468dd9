package construction

import (
	"fmt"

	"go.uber.org/zap"

	"honnef.co/go/euclid"
)

// Snapshot is the serializable state of a Space.
type Snapshot struct {
	Points  map[string]Point  `json:"points"`
	Lines   map[string]Line   `json:"lines"`
	Circles map[string]Circle `json:"circles"`
	History []Step            `json:"history"`
}

// Snapshot returns a deep copy of the space's state.
func (s *Space) Snapshot() Snapshot {
	snap := Snapshot{
		Points:  make(map[string]Point, len(s.points)),
		Lines:   make(map[string]Line, len(s.lines)),
		Circles: make(map[string]Circle, len(s.circles)),
		History: s.History(),
	}
	for id, p := range s.points {
		snap.Points[id] = p.clone()
	}
	for id, l := range s.lines {
		snap.Lines[id] = l.clone()
	}
	for id, c := range s.circles {
		snap.Circles[id] = c.clone()
	}
	return snap
}

// ReplayError reports the history step a replay stopped at.
type ReplayError struct {
	Index int
	Kind  StepKind
	Err   error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replaying step %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Replay builds a new space by applying history in order. Recorded
// identifiers are kept, so later steps resolve against earlier ones. Each
// step is validated before it is applied; the first invalid or failing step
// aborts the replay with a *ReplayError.
//
// A find_intersections step is executed again and adds fresh points. Spaces
// never record such steps themselves: their intersection points appear as
// add_point steps.
func Replay(history []Step, opts ...Option) (*Space, error) {
	s := New(opts...)
	for i, step := range history {
		if err := s.Apply(step); err != nil {
			return nil, &ReplayError{Index: i, Kind: step.Kind, Err: err}
		}
	}
	s.logger.Debug("history replayed", zap.Int("steps", len(history)))
	return s, nil
}

// Apply validates step against the current state and applies it.
func (s *Space) Apply(step Step) error {
	if err := s.checkStep(step); err != nil {
		return s.reject("apply", invalidConstruction(fmt.Sprintf("step %q is not valid in this space: %v", step.Kind, err)))
	}

	var err error
	switch step.Kind {
	case StepAddPoint:
		_, err = s.AddPoint(*step.Point)
	case StepConstructLine:
		l := newLine("", step.Point1ID, step.Point2ID, "")
		if step.Line != nil {
			l.ID = step.Line.ID
			l.Label = step.Line.Label
		}
		if l.ID == "" {
			l.ID = s.newID()
		}
		_, err = s.insertLine(l)
	case StepConstructCircle:
		c := newCircle("", step.CenterID, step.RadiusPointID, "")
		if step.Circle != nil {
			c.ID = step.Circle.ID
			c.Label = step.Circle.Label
		}
		if c.ID == "" {
			c.ID = s.newID()
		}
		_, err = s.insertCircle(c)
	case StepFindIntersections:
		_, err = s.FindIntersections(step.Obj1ID, step.Obj2ID)
	}
	return err
}

// Restore rebuilds a space from a snapshot by replaying its history, then
// checks that the result holds exactly the snapshot's entities.
//
// A snapshot history may not contain find_intersections steps. Replaying one
// gives its points fresh identifiers, which can never match the snapshot's;
// spaces record intersection points as add_point steps instead.
func Restore(snap Snapshot, opts ...Option) (*Space, error) {
	for i, step := range snap.History {
		if step.Kind == StepFindIntersections {
			return nil, &ReplayError{
				Index: i,
				Kind:  step.Kind,
				Err:   invalidConstruction("find_intersections steps cannot be restored; record their points as add_point steps"),
			}
		}
	}
	s, err := Replay(snap.History, opts...)
	if err != nil {
		return nil, err
	}
	if len(s.points) != len(snap.Points) || len(s.lines) != len(snap.Lines) || len(s.circles) != len(snap.Circles) {
		return nil, invalidConstruction("snapshot entities do not match its history")
	}
	for id := range snap.Points {
		if _, ok := s.points[id]; !ok {
			return nil, invalidConstruction("snapshot point missing from history: " + id)
		}
	}
	for id := range snap.Lines {
		if _, ok := s.lines[id]; !ok {
			return nil, invalidConstruction("snapshot line missing from history: " + id)
		}
	}
	for id := range snap.Circles {
		if _, ok := s.circles[id]; !ok {
			return nil, invalidConstruction("snapshot circle missing from history: " + id)
		}
	}
	return s, nil
}

// Summary describes the size of a construction.
type Summary struct {
	Points      int `json:"points"`
	Constructed int `json:"constructed_points"`
	Lines       int `json:"lines"`
	Circles     int `json:"circles"`
	Steps       int `json:"steps"`
	// Bounds encloses every point and circle. It is nil for an empty space.
	Bounds *euclid.Rect `json:"bounds,omitempty"`
}

// Summary returns counts per kind and the bounding box of the construction.
func (s *Space) Summary() Summary {
	sum := Summary{
		Points:  len(s.points),
		Lines:   len(s.lines),
		Circles: len(s.circles),
		Steps:   len(s.history),
	}

	var bounds euclid.Rect
	first := true
	grow := func(r euclid.Rect) {
		if first {
			bounds = r
			first = false
			return
		}
		bounds = bounds.Union(r)
	}
	for _, id := range s.pointOrder {
		p := s.points[id]
		if p.Constructed {
			sum.Constructed++
		}
		grow(euclid.NewRectFromPoints(p.Pos, p.Pos))
	}
	for _, id := range s.circleOrder {
		shape, _ := s.CircleShape(id)
		grow(shape.BoundingBox())
	}
	if !first {
		sum.Bounds = &bounds
	}
	return sum
}
