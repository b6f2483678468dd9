// Package command executes JSON construction commands against a snapshot of
// a construction space and reports the resulting snapshot.
//
// A request names a command, optionally carries the current space as
// "construction_space", and holds the command's arguments at the top level:
//
//	{"command": "construct_line", "construction_space": {...}, "point1_id": "a", "point2_id": "b"}
//
// The space is rebuilt from the snapshot's history for every request, so
// requests are independent of each other.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"honnef.co/go/euclid/construction"
	"honnef.co/go/euclid/internal/metrics"
)

// Command names.
const (
	HealthCheck          = "health_check"
	CreateSpace          = "create_construction_space"
	AddPoint             = "add_point"
	ConstructLine        = "construct_line"
	ConstructCircle      = "construct_circle"
	FindIntersections    = "find_intersections"
	Circumcenter         = "circumcenter"
	ValidateStep         = "validate_step"
	ValidateSequence     = "validate_sequence"
	ValidateConstruction = "validate_construction"
	Replay               = "replay"
	Summary              = "summary"
	GetAllObjects        = "get_all_objects"
	Clear                = "clear"
	AvailableTools       = "available_tools"
)

// Engine identifies this implementation in health checks.
const Engine = "go"

// Request is one decoded command.
type Request struct {
	Command string
	// Space is the construction to operate on. Nil means an empty space.
	Space *construction.Snapshot

	args json.RawMessage
}

func (r *Request) UnmarshalJSON(data []byte) error {
	var env struct {
		Command string                 `json:"command"`
		Space   *construction.Snapshot `json:"construction_space"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	r.Command = env.Command
	r.Space = env.Space
	r.args = append(json.RawMessage(nil), data...)
	return nil
}

// NewRequest builds a request from a command name and an argument value
// that encodes as a JSON object. args may be nil.
func NewRequest(name string, space *construction.Snapshot, args any) (Request, error) {
	raw := json.RawMessage("{}")
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return Request{}, fmt.Errorf("encode %s arguments: %w", name, err)
		}
		raw = b
	}
	return Request{Command: name, Space: space, args: raw}, nil
}

// Decode reads one request from r.
func Decode(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, &Error{Kind: KindBadRequest, Message: "Invalid JSON input", Err: err}
	}
	if req.Command == "" {
		return Request{}, &Error{
			Kind:    KindValidation,
			Message: "command is required",
			Fields:  map[string]string{"command": "command is required"},
		}
	}
	return req, nil
}

// Response is the JSON document written for every request.
type Response struct {
	Success bool                   `json:"success"`
	Result  any                    `json:"result,omitempty"`
	Space   *construction.Snapshot `json:"construction_space,omitempty"`
	Error   *ErrorBody             `json:"error,omitempty"`
}

// Dispatcher routes requests to construction operations.
type Dispatcher struct {
	logger   *zap.Logger
	metrics  *metrics.Collector
	validate *validator.Validate
	version  string
	newID    func() string
}

type Option func(*Dispatcher)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records every executed command in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithVersion sets the version reported by health checks.
func WithVersion(v string) Option {
	return func(d *Dispatcher) { d.version = v }
}

// WithIDGenerator is passed on to every space the dispatcher builds.
func WithIDGenerator(gen func() string) Option {
	return func(d *Dispatcher) { d.newID = gen }
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   zap.NewNop(),
		validate: newValidator(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) spaceOptions() []construction.Option {
	opts := []construction.Option{construction.WithLogger(d.logger)}
	if d.newID != nil {
		opts = append(opts, construction.WithIDGenerator(d.newID))
	}
	return opts
}

// Execute runs req. The returned response is complete in both cases: on
// failure it carries the error body and err is the underlying error.
func (d *Dispatcher) Execute(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := d.execute(ctx, req)
	elapsed := time.Since(start)

	label := req.Command
	if _, ok := handlers[label]; !ok && !isSpaceless(label) {
		label = "unknown"
	}
	if d.metrics != nil {
		d.metrics.ObserveCommand(label, err, elapsed)
	}

	if err != nil {
		body := Describe(err)
		d.logger.Info("command failed",
			zap.String("command", req.Command),
			zap.String("kind", body.Kind),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return Response{Error: &body}, err
	}
	d.logger.Debug("command executed",
		zap.String("command", req.Command),
		zap.Duration("duration", elapsed),
	)
	resp.Success = true
	return resp, nil
}

// Handle decodes one request from r, executes it and writes the response to
// w. It returns the command's error, if any, after the response is written.
func (d *Dispatcher) Handle(ctx context.Context, r io.Reader, w io.Writer) error {
	var resp Response
	req, err := Decode(r)
	if err != nil {
		body := Describe(err)
		resp = Response{Error: &body}
	} else {
		resp, err = d.Execute(ctx, req)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		return fmt.Errorf("encode response: %w", encErr)
	}
	if _, werr := w.Write(buf.Bytes()); werr != nil {
		return fmt.Errorf("write response: %w", werr)
	}
	return err
}

func isSpaceless(name string) bool {
	switch name {
	case HealthCheck, CreateSpace, Replay, ValidateConstruction:
		return true
	default:
		return false
	}
}

func (d *Dispatcher) execute(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	switch req.Command {
	case HealthCheck:
		return Response{Result: Health{Status: "healthy", Version: d.version, Engine: Engine}}, nil
	case CreateSpace:
		snap := construction.New().Snapshot()
		return Response{Space: &snap}, nil
	case Replay:
		return d.replay(req.args)
	case ValidateConstruction:
		return Response{Result: d.validateConstruction(req.Space), Space: req.Space}, nil
	}

	h, ok := handlers[req.Command]
	if !ok {
		return Response{}, unknownCommand(req.Command)
	}

	s, err := d.restore(req.Space)
	if err != nil {
		return Response{}, err
	}
	before := s.Summary()
	result, err := h(d, s, req.args)
	if err != nil {
		return Response{}, err
	}
	d.countCreated(before, s.Summary())

	snap := s.Snapshot()
	return Response{Result: result, Space: &snap}, nil
}

func (d *Dispatcher) restore(snap *construction.Snapshot) (*construction.Space, error) {
	if snap == nil {
		return construction.New(d.spaceOptions()...), nil
	}
	s, err := construction.Restore(*snap, d.spaceOptions()...)
	if err != nil {
		return nil, fmt.Errorf("restore construction space: %w", err)
	}
	return s, nil
}

func (d *Dispatcher) countCreated(before, after construction.Summary) {
	if d.metrics == nil {
		return
	}
	d.metrics.AddEntities(string(construction.KindPoint), after.Points-before.Points)
	d.metrics.AddEntities(string(construction.KindLine), after.Lines-before.Lines)
	d.metrics.AddEntities(string(construction.KindCircle), after.Circles-before.Circles)
}

// decodeArgs unmarshals the request's arguments into dst and checks its
// validate tags.
func (d *Dispatcher) decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &Error{Kind: KindBadRequest, Message: "Invalid command arguments", Err: err}
	}
	if err := d.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}
