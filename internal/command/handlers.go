package command

import (
	"encoding/json"
	"fmt"

	"honnef.co/go/euclid/collection"
	"honnef.co/go/euclid/construction"
)

type handler func(d *Dispatcher, s *construction.Space, args json.RawMessage) (any, error)

// handlers holds the commands that operate on a restored space.
var handlers = map[string]handler{
	AddPoint:          (*Dispatcher).addPoint,
	ConstructLine:     (*Dispatcher).constructLine,
	ConstructCircle:   (*Dispatcher).constructCircle,
	FindIntersections: (*Dispatcher).findIntersections,
	Circumcenter:      (*Dispatcher).circumcenter,
	ValidateStep:      (*Dispatcher).validateStep,
	ValidateSequence:  (*Dispatcher).validateSequence,
	Summary:           (*Dispatcher).summary,
	GetAllObjects:     (*Dispatcher).allObjects,
	Clear:             (*Dispatcher).clear,
	AvailableTools:    (*Dispatcher).availableTools,
}

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Engine  string `json:"engine"`
}

type PointResult struct {
	PointID string `json:"point_id"`
}

type LineResult struct {
	LineID string `json:"line_id"`
}

type CircleResult struct {
	CircleID string `json:"circle_id"`
}

type IntersectionsResult struct {
	Intersections []construction.Point `json:"intersections"`
}

type CircumcenterResult struct {
	Circumcenter construction.Point `json:"circumcenter"`
}

type StepValidity struct {
	IsValid bool `json:"is_valid"`
}

// SequenceValidity reports the first step of a sequence that cannot be
// applied. FailedIndex is -1 when every step applies.
type SequenceValidity struct {
	IsValid     bool   `json:"is_valid"`
	FailedIndex int    `json:"failed_index"`
	Reason      string `json:"reason,omitempty"`
}

type ConstructionValidity struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

type ObjectsResult struct {
	Objects []construction.Object `json:"objects"`
}

type addPointArgs struct {
	X     *float64 `json:"x" validate:"required"`
	Y     *float64 `json:"y" validate:"required"`
	Label string   `json:"label" validate:"max=64"`
}

func (d *Dispatcher) addPoint(s *construction.Space, raw json.RawMessage) (any, error) {
	var args addPointArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := s.AddPointAt(*args.X, *args.Y, args.Label)
	if err != nil {
		return nil, err
	}
	return PointResult{PointID: id}, nil
}

type lineArgs struct {
	Point1ID string `json:"point1_id" validate:"required"`
	Point2ID string `json:"point2_id" validate:"required"`
	Label    string `json:"label" validate:"max=64"`
}

func (d *Dispatcher) constructLine(s *construction.Space, raw json.RawMessage) (any, error) {
	var args lineArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := s.ConstructLine(args.Point1ID, args.Point2ID, args.Label)
	if err != nil {
		return nil, err
	}
	return LineResult{LineID: id}, nil
}

type circleArgs struct {
	CenterID      string `json:"center_id" validate:"required"`
	RadiusPointID string `json:"radius_point_id" validate:"required"`
	Label         string `json:"label" validate:"max=64"`
}

func (d *Dispatcher) constructCircle(s *construction.Space, raw json.RawMessage) (any, error) {
	var args circleArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	id, err := s.ConstructCircle(args.CenterID, args.RadiusPointID, args.Label)
	if err != nil {
		return nil, err
	}
	return CircleResult{CircleID: id}, nil
}

type intersectionArgs struct {
	Obj1ID string `json:"obj1_id" validate:"required"`
	Obj2ID string `json:"obj2_id" validate:"required"`
	// Require turns an empty result into a NO_INTERSECTIONS error.
	Require bool `json:"require"`
}

func (d *Dispatcher) findIntersections(s *construction.Space, raw json.RawMessage) (any, error) {
	var args intersectionArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	find := s.FindIntersections
	if args.Require {
		find = s.RequireIntersections
	}
	pts, err := find(args.Obj1ID, args.Obj2ID)
	if err != nil {
		return nil, err
	}
	if pts == nil {
		pts = []construction.Point{}
	}
	return IntersectionsResult{Intersections: pts}, nil
}

type circumcenterArgs struct {
	PointIDs []string `json:"point_ids" validate:"len=3,dive,required"`
}

func (d *Dispatcher) circumcenter(s *construction.Space, raw json.RawMessage) (any, error) {
	var args circumcenterArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	p, err := s.Circumcenter(args.PointIDs[0], args.PointIDs[1], args.PointIDs[2])
	if err != nil {
		return nil, err
	}
	return CircumcenterResult{Circumcenter: p}, nil
}

type stepArgs struct {
	Step *construction.Step `json:"step" validate:"required"`
}

func (d *Dispatcher) validateStep(s *construction.Space, raw json.RawMessage) (any, error) {
	var args stepArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return StepValidity{IsValid: s.ValidateStep(*args.Step)}, nil
}

type sequenceArgs struct {
	Steps []construction.Step `json:"steps" validate:"required"`
}

// validateSequence applies the steps to a copy of s, so the returned space
// is unchanged.
func (d *Dispatcher) validateSequence(s *construction.Space, raw json.RawMessage) (any, error) {
	var args sequenceArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	scratch, err := construction.Restore(s.Snapshot(), d.spaceOptions()...)
	if err != nil {
		return nil, fmt.Errorf("copy construction space: %w", err)
	}
	for i, step := range args.Steps {
		if err := scratch.Apply(step); err != nil {
			return SequenceValidity{FailedIndex: i, Reason: err.Error()}, nil
		}
	}
	return SequenceValidity{IsValid: true, FailedIndex: -1}, nil
}

func (d *Dispatcher) summary(s *construction.Space, _ json.RawMessage) (any, error) {
	return s.Summary(), nil
}

func (d *Dispatcher) allObjects(s *construction.Space, _ json.RawMessage) (any, error) {
	return ObjectsResult{Objects: s.AllObjects()}, nil
}

func (d *Dispatcher) clear(s *construction.Space, _ json.RawMessage) (any, error) {
	s.Clear()
	return nil, nil
}

// availableTools reports the collection a player would hold after building
// the objects of s.
func (d *Dispatcher) availableTools(s *construction.Space, _ json.RawMessage) (any, error) {
	c := collection.New()
	c.Observe(s.AllObjects())
	return c.Summary(), nil
}

type historyArgs struct {
	History []construction.Step `json:"history" validate:"required"`
}

func (d *Dispatcher) replay(raw json.RawMessage) (Response, error) {
	var args historyArgs
	if err := d.decodeArgs(raw, &args); err != nil {
		return Response{}, err
	}
	s, err := construction.Replay(args.History, d.spaceOptions()...)
	if err != nil {
		return Response{}, err
	}
	d.countCreated(construction.Summary{}, s.Summary())
	snap := s.Snapshot()
	return Response{Result: s.Summary(), Space: &snap}, nil
}

// validateConstruction checks that snap replays to itself and suggests a
// next step.
func (d *Dispatcher) validateConstruction(snap *construction.Snapshot) ConstructionValidity {
	v := ConstructionValidity{IsValid: true, Errors: []string{}, Suggestions: []string{}}
	if snap == nil {
		v.Suggestions = append(v.Suggestions, "Create a construction space and add a point")
		return v
	}
	s, err := construction.Restore(*snap, d.spaceOptions()...)
	if err != nil {
		v.IsValid = false
		v.Errors = append(v.Errors, err.Error())
		return v
	}

	sum := s.Summary()
	switch {
	case sum.Points < 2:
		v.Suggestions = append(v.Suggestions, "Add at least two points to construct a line or circle")
	case sum.Lines+sum.Circles == 0:
		v.Suggestions = append(v.Suggestions, "Construct a line or circle through two points")
	case sum.Lines+sum.Circles >= 2 && sum.Constructed == 0:
		v.Suggestions = append(v.Suggestions, "Find the intersections of two lines or circles")
	}
	return v
}
