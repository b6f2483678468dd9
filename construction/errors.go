package construction

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates construction failures.
type ErrorKind string

const (
	// KindPointNotFound means a referenced point identifier is absent.
	KindPointNotFound ErrorKind = "POINT_NOT_FOUND"
	// KindInvalidConstruction means the request is structurally invalid.
	KindInvalidConstruction ErrorKind = "INVALID_CONSTRUCTION"
	// KindNoIntersections is returned by call sites that require at least
	// one intersection point.
	KindNoIntersections ErrorKind = "NO_INTERSECTIONS"
)

// Error is the error type returned by Space operations.
type Error struct {
	Kind ErrorKind `json:"kind"`
	// ID is the offending identifier for KindPointNotFound.
	ID     string `json:"id,omitempty"`
	Reason string `json:"message"`
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindPointNotFound:
		return fmt.Sprintf("point not found: %s", e.ID)
	case KindInvalidConstruction:
		return fmt.Sprintf("invalid construction: %s", e.Reason)
	case KindNoIntersections:
		return "no intersections found"
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrNoIntersections) works for any wrapped occurrence.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrNoIntersections is returned by [Space.RequireIntersections] when two
// objects do not meet.
var ErrNoIntersections = &Error{Kind: KindNoIntersections, Reason: "no intersections found"}

func pointNotFound(id string) *Error {
	return &Error{Kind: KindPointNotFound, ID: id, Reason: "point not found"}
}

func invalidConstruction(reason string) *Error {
	return &Error{Kind: KindInvalidConstruction, Reason: reason}
}

// KindOf returns the kind of the first *Error in err's chain, or the empty
// kind if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsPointNotFound(err error) bool {
	return KindOf(err) == KindPointNotFound
}

func IsInvalidConstruction(err error) bool {
	return KindOf(err) == KindInvalidConstruction
}

func IsNoIntersections(err error) bool {
	return KindOf(err) == KindNoIntersections
}
