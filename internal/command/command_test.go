package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/euclid/collection"
	"honnef.co/go/euclid/construction"
	"honnef.co/go/euclid/internal/metrics"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestDispatcher(opts ...Option) *Dispatcher {
	return New(append([]Option{WithIDGenerator(sequentialIDs())}, opts...)...)
}

func exec(t *testing.T, d *Dispatcher, name string, space *construction.Snapshot, args any) (Response, error) {
	t.Helper()
	req, err := NewRequest(name, space, args)
	require.NoError(t, err)
	return d.Execute(context.Background(), req)
}

func mustExec(t *testing.T, d *Dispatcher, name string, space *construction.Snapshot, args any) Response {
	t.Helper()
	resp, err := exec(t, d, name, space, args)
	require.NoError(t, err)
	require.True(t, resp.Success)
	return resp
}

// buildLens places A=(0,0) and B=(1,0), draws the circles centered on each
// through the other and intersects them. The identifiers are id-1 to id-6.
func buildLens(t *testing.T, d *Dispatcher) *construction.Snapshot {
	t.Helper()
	resp := mustExec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0, "label": "A"})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 1, "y": 0, "label": "B"})
	resp = mustExec(t, d, ConstructCircle, resp.Space, map[string]any{"center_id": "id-1", "radius_point_id": "id-2"})
	resp = mustExec(t, d, ConstructCircle, resp.Space, map[string]any{"center_id": "id-2", "radius_point_id": "id-1"})
	resp = mustExec(t, d, FindIntersections, resp.Space, map[string]any{"obj1_id": "id-3", "obj2_id": "id-4"})
	return resp.Space
}

func TestHealthCheck(t *testing.T) {
	d := New(WithVersion("1.2.3"))
	resp := mustExec(t, d, HealthCheck, nil, nil)
	assert.Equal(t, Health{Status: "healthy", Version: "1.2.3", Engine: "go"}, resp.Result)
	assert.Nil(t, resp.Space)
}

func TestCreateSpace(t *testing.T) {
	d := newTestDispatcher()
	resp := mustExec(t, d, CreateSpace, nil, nil)
	require.NotNil(t, resp.Space)

	b, err := json.Marshal(resp.Space)
	require.NoError(t, err)
	assert.JSONEq(t, `{"points":{},"lines":{},"circles":{},"history":[]}`, string(b))
}

func TestBuildConstruction(t *testing.T) {
	d := newTestDispatcher()

	resp := mustExec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0, "label": "A"})
	assert.Equal(t, PointResult{PointID: "id-1"}, resp.Result)

	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 1, "y": 0})
	assert.Equal(t, PointResult{PointID: "id-2"}, resp.Result)

	resp = mustExec(t, d, ConstructLine, resp.Space, map[string]any{"point1_id": "id-1", "point2_id": "id-2", "label": "AB"})
	assert.Equal(t, LineResult{LineID: "id-3"}, resp.Result)
	assert.Equal(t, "AB", resp.Space.Lines["id-3"].Label)

	resp = mustExec(t, d, ConstructCircle, resp.Space, map[string]any{"center_id": "id-1", "radius_point_id": "id-2"})
	assert.Equal(t, CircleResult{CircleID: "id-4"}, resp.Result)

	resp = mustExec(t, d, FindIntersections, resp.Space, map[string]any{"obj1_id": "id-3", "obj2_id": "id-4"})
	result, ok := resp.Result.(IntersectionsResult)
	require.True(t, ok)
	require.Len(t, result.Intersections, 2)
	assert.Equal(t, []string{"id-3", "id-4"}, result.Intersections[0].Dependencies)

	assert.Len(t, resp.Space.Points, 4)
	assert.Len(t, resp.Space.History, 6)
}

func TestLensIntersections(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	require.Len(t, space.Points, 4)
	for _, id := range []string{"id-5", "id-6"} {
		p := space.Points[id]
		assert.True(t, p.Constructed)
		assert.InDelta(t, 0.5, p.Pos.X, 1e-9)
		assert.InDelta(t, math.Sqrt(3)/2, math.Abs(p.Pos.Y), 1e-9)
	}
	assert.InDelta(t, 0, space.Points["id-5"].Pos.Y+space.Points["id-6"].Pos.Y, 1e-9)
}

func TestAddPointValidation(t *testing.T) {
	d := newTestDispatcher()

	resp, err := exec(t, d, AddPoint, nil, map[string]any{"x": 1})
	require.Error(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(KindValidation), resp.Error.Kind)
	assert.Equal(t, map[string]string{"y": "y is required"}, resp.Error.Fields)

	// Zero is a value, not a missing field.
	_, err = exec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0})
	assert.NoError(t, err)

	resp, err = exec(t, d, AddPoint, nil, map[string]any{"x": "one", "y": 0})
	require.Error(t, err)
	assert.Equal(t, string(KindBadRequest), resp.Error.Kind)

	resp, err = exec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0, "label": strings.Repeat("a", 65)})
	require.Error(t, err)
	assert.Contains(t, resp.Error.Fields, "label")
}

func TestConstructLineErrors(t *testing.T) {
	d := newTestDispatcher()
	space := mustExec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0}).Space

	resp, err := exec(t, d, ConstructLine, space, map[string]any{"point1_id": "id-1", "point2_id": "missing"})
	require.Error(t, err)
	assert.True(t, construction.IsPointNotFound(err))
	assert.Equal(t, "POINT_NOT_FOUND", resp.Error.Kind)
	assert.Equal(t, "missing", resp.Error.ID)
	assert.Nil(t, resp.Space)

	resp, err = exec(t, d, ConstructLine, space, map[string]any{"point1_id": "id-1", "point2_id": "id-1"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CONSTRUCTION", resp.Error.Kind)

	resp, err = exec(t, d, ConstructLine, space, map[string]any{"point1_id": "id-1"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"point2_id": "point2_id is required"}, resp.Error.Fields)
}

func TestFindIntersectionsEmptyAndRequired(t *testing.T) {
	d := newTestDispatcher()
	resp := mustExec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 1, "y": 0})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 0, "y": 1})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 1, "y": 1})
	resp = mustExec(t, d, ConstructLine, resp.Space, map[string]any{"point1_id": "id-1", "point2_id": "id-2"})
	resp = mustExec(t, d, ConstructLine, resp.Space, map[string]any{"point1_id": "id-3", "point2_id": "id-4"})
	space := resp.Space

	resp = mustExec(t, d, FindIntersections, space, map[string]any{"obj1_id": "id-5", "obj2_id": "id-6"})
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"intersections":[]}`, string(b))
	assert.Len(t, resp.Space.History, len(space.History))

	resp, err = exec(t, d, FindIntersections, space, map[string]any{"obj1_id": "id-5", "obj2_id": "id-6", "require": true})
	require.Error(t, err)
	assert.ErrorIs(t, err, construction.ErrNoIntersections)
	assert.Equal(t, "NO_INTERSECTIONS", resp.Error.Kind)

	_, err = exec(t, d, FindIntersections, space, map[string]any{"obj1_id": "id-1", "obj2_id": "id-5"})
	assert.True(t, construction.IsInvalidConstruction(err))
}

func TestCircumcenterCommand(t *testing.T) {
	d := newTestDispatcher()
	resp := mustExec(t, d, AddPoint, nil, map[string]any{"x": 0, "y": 0})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 4, "y": 0})
	resp = mustExec(t, d, AddPoint, resp.Space, map[string]any{"x": 0, "y": 3})
	space := resp.Space

	resp = mustExec(t, d, Circumcenter, space, map[string]any{"point_ids": []string{"id-1", "id-2", "id-3"}})
	result, ok := resp.Result.(CircumcenterResult)
	require.True(t, ok)
	assert.InDelta(t, 2, result.Circumcenter.Pos.X, 1e-9)
	assert.InDelta(t, 1.5, result.Circumcenter.Pos.Y, 1e-9)
	assert.Equal(t, "Circumcenter", result.Circumcenter.Label)
	assert.Contains(t, resp.Space.Points, result.Circumcenter.ID)

	resp, err := exec(t, d, Circumcenter, space, map[string]any{"point_ids": []string{"id-1", "id-2"}})
	require.Error(t, err)
	assert.Equal(t, string(KindValidation), resp.Error.Kind)
	assert.Contains(t, resp.Error.Fields, "point_ids")
}

func TestValidateStepCommand(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	valid := construction.Step{Kind: construction.StepConstructLine, Point1ID: "id-1", Point2ID: "id-2"}
	resp := mustExec(t, d, ValidateStep, space, map[string]any{"step": valid})
	assert.Equal(t, StepValidity{IsValid: true}, resp.Result)

	invalid := construction.Step{Kind: construction.StepConstructLine, Point1ID: "id-1", Point2ID: "id-1"}
	resp = mustExec(t, d, ValidateStep, space, map[string]any{"step": invalid})
	assert.Equal(t, StepValidity{IsValid: false}, resp.Result)

	_, err := exec(t, d, ValidateStep, space, nil)
	assert.Error(t, err)
}

func TestValidateSequence(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	steps := []construction.Step{
		{Kind: construction.StepConstructLine, Line: &construction.Line{ID: "l1"}, Point1ID: "id-1", Point2ID: "id-5"},
		{Kind: construction.StepFindIntersections, Obj1ID: "l1", Obj2ID: "id-3"},
	}
	resp := mustExec(t, d, ValidateSequence, space, map[string]any{"steps": steps})
	assert.Equal(t, SequenceValidity{IsValid: true, FailedIndex: -1}, resp.Result)
	assert.Equal(t, space, resp.Space)

	steps = append(steps, construction.Step{Kind: construction.StepConstructCircle, CenterID: "id-1", RadiusPointID: "nowhere"})
	resp = mustExec(t, d, ValidateSequence, space, map[string]any{"steps": steps})
	result, ok := resp.Result.(SequenceValidity)
	require.True(t, ok)
	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.FailedIndex)
	assert.NotEmpty(t, result.Reason)
}

func TestReplayCommand(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	resp := mustExec(t, d, Replay, nil, map[string]any{"history": space.History})
	assert.Equal(t, space, resp.Space)
	sum, ok := resp.Result.(construction.Summary)
	require.True(t, ok)
	assert.Equal(t, 4, sum.Points)
	assert.Equal(t, 2, sum.Constructed)
	assert.Equal(t, 2, sum.Circles)

	bad := append([]construction.Step{}, space.History[:2]...)
	bad = append(bad, construction.Step{Kind: construction.StepConstructLine, Point1ID: "id-1", Point2ID: "ghost"})
	resp, err := exec(t, d, Replay, nil, map[string]any{"history": bad})
	require.Error(t, err)
	require.NotNil(t, resp.Error.Step)
	assert.Equal(t, 2, *resp.Error.Step)
	assert.Equal(t, "INVALID_CONSTRUCTION", resp.Error.Kind)
}

func TestRestoreRejectsTamperedSpace(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)
	delete(space.Points, "id-5")

	resp, err := exec(t, d, Summary, space, nil)
	require.Error(t, err)
	assert.Equal(t, "INVALID_CONSTRUCTION", resp.Error.Kind)
}

func TestValidateConstruction(t *testing.T) {
	d := newTestDispatcher()

	resp := mustExec(t, d, ValidateConstruction, nil, nil)
	v, ok := resp.Result.(ConstructionValidity)
	require.True(t, ok)
	assert.True(t, v.IsValid)
	assert.Len(t, v.Suggestions, 1)

	space := buildLens(t, d)
	resp = mustExec(t, d, ValidateConstruction, space, nil)
	v = resp.Result.(ConstructionValidity)
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Equal(t, space, resp.Space)

	delete(space.Circles, "id-4")
	resp = mustExec(t, d, ValidateConstruction, space, nil)
	v = resp.Result.(ConstructionValidity)
	assert.False(t, v.IsValid)
	assert.Len(t, v.Errors, 1)
}

func TestSummaryAndObjects(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	resp := mustExec(t, d, Summary, space, nil)
	sum := resp.Result.(construction.Summary)
	assert.Equal(t, 6, sum.Steps)
	require.NotNil(t, sum.Bounds)
	assert.InDelta(t, -1, sum.Bounds.X0, 1e-9)
	assert.InDelta(t, 2, sum.Bounds.X1, 1e-9)

	resp = mustExec(t, d, GetAllObjects, space, nil)
	objs := resp.Result.(ObjectsResult).Objects
	require.Len(t, objs, 6)
	kinds := make([]construction.ObjectKind, len(objs))
	for i, o := range objs {
		kinds[i] = o.Kind
	}
	assert.Equal(t, []construction.ObjectKind{
		construction.KindPoint, construction.KindPoint, construction.KindPoint, construction.KindPoint,
		construction.KindCircle, construction.KindCircle,
	}, kinds)
}

func TestClearCommand(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	resp := mustExec(t, d, Clear, space, nil)
	assert.Empty(t, resp.Space.Points)
	assert.Empty(t, resp.Space.Circles)
	assert.Empty(t, resp.Space.History)
}

func TestAvailableTools(t *testing.T) {
	d := newTestDispatcher()
	space := buildLens(t, d)

	resp := mustExec(t, d, AvailableTools, space, nil)
	sum, ok := resp.Result.(collection.Summary)
	require.True(t, ok)
	assert.Equal(t, 2, sum.Caught)
	assert.Equal(t, []collection.Tool{
		collection.ToolPoint, collection.ToolLine, collection.ToolCircle,
		collection.ToolTangent, collection.ToolArc,
	}, sum.Tools)
}

func TestUnknownCommand(t *testing.T) {
	m := metrics.New("test")
	d := newTestDispatcher(WithMetrics(m))

	resp, err := exec(t, d, "square_the_circle", nil, nil)
	require.Error(t, err)
	assert.Equal(t, string(KindUnknownCommand), resp.Error.Kind)
	assert.Equal(t, `Unknown command: "square_the_circle"`, resp.Error.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("unknown", "error")))
}

func TestCommandMetrics(t *testing.T) {
	m := metrics.New("test")
	d := newTestDispatcher(WithMetrics(m))
	buildLens(t, d)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues(AddPoint, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues(FindIntersections, "ok")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("point")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("circle")))
}

func TestCanceledContext(t *testing.T) {
	d := newTestDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := NewRequest(HealthCheck, nil, nil)
	require.NoError(t, err)
	resp, err := d.Execute(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, string(KindInternal), resp.Error.Kind)
}

func TestHandle(t *testing.T) {
	d := newTestDispatcher()

	var out bytes.Buffer
	err := d.Handle(context.Background(), strings.NewReader(`{"command":"add_point","x":3,"y":4}`), &out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, true, doc["success"])
	assert.Equal(t, map[string]any{"point_id": "id-1"}, doc["result"])
	space := doc["construction_space"].(map[string]any)
	assert.Contains(t, space["points"], "id-1")

	// The returned space feeds the next request.
	next, err := json.Marshal(map[string]any{
		"command":            "add_point",
		"construction_space": space,
		"x":                  0,
		"y":                  0,
	})
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, d.Handle(context.Background(), bytes.NewReader(next), &out))
	var resp Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Len(t, resp.Space.Points, 2)
}

func TestHandleInvalidJSON(t *testing.T) {
	d := newTestDispatcher()

	var out bytes.Buffer
	err := d.Handle(context.Background(), strings.NewReader(`{"command":`), &out)
	require.Error(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"kind":"BAD_REQUEST","message":"Invalid JSON input"}}`, out.String())

	out.Reset()
	err = d.Handle(context.Background(), strings.NewReader(`{}`), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), `"command is required"`)
}
