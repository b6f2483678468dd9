// Package server exposes the construction commands over HTTP, either
// stateless with the space in the request body or per session with the
// space kept in a store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"honnef.co/go/euclid/construction"
	"honnef.co/go/euclid/internal/command"
	"honnef.co/go/euclid/internal/metrics"
	"honnef.co/go/euclid/internal/store"
)

const (
	maxBodyBytes = 1 << 20
	// statusClientClosedRequest is logged when the client went away before
	// the command finished.
	statusClientClosedRequest = 499
)

// SessionStore keeps one construction snapshot per session.
type SessionStore interface {
	Get(ctx context.Context, id string) (store.Session, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn func(current *construction.Snapshot) (*construction.Snapshot, error)) error
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Options configures a Server. Only Dispatcher is required; without Store
// the session routes answer 501, and without Metrics /metrics is not served.
type Options struct {
	Dispatcher     *command.Dispatcher
	Store          SessionStore
	Metrics        *metrics.Collector
	Logger         *zap.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type Server struct {
	dispatcher     *command.Dispatcher
	store          SessionStore
	metrics        *metrics.Collector
	logger         *zap.Logger
	corsOrigins    []string
	requestTimeout time.Duration

	// mu serializes session commands so that two requests on one session
	// never interleave their read-modify-write.
	mu sync.Mutex
}

func New(opts Options) *Server {
	s := &Server{
		dispatcher:     opts.Dispatcher,
		store:          opts.Store,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
		corsOrigins:    opts.CORSOrigins,
		requestTimeout: opts.RequestTimeout,
	}
	if s.dispatcher == nil {
		s.dispatcher = command.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if len(s.corsOrigins) == 0 {
		s.corsOrigins = []string{"*"}
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = 10 * time.Second
	}
	return s
}

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger, s.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.Timeout(s.requestTimeout))

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/commands", s.runCommand)
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Get("/{sessionID}", s.getSession)
			r.Delete("/{sessionID}", s.deleteSession)
			r.Post("/{sessionID}/commands", s.runSessionCommand)
		})
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	req, err := command.NewRequest(command.HealthCheck, nil, nil)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	resp, err := s.dispatcher.Execute(r.Context(), req)
	if err != nil {
		s.respondJSON(w, statusFor(err), resp)
		return
	}
	s.respondJSON(w, http.StatusOK, resp.Result)
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			s.logger.Error("store not ready", zap.Error(err))
			s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// runCommand executes a command against the space carried in the body.
func (s *Server) runCommand(w http.ResponseWriter, r *http.Request) {
	req, err := command.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	resp, err := s.dispatcher.Execute(r.Context(), req)
	s.respondCommand(w, resp, err)
}

// runSessionCommand executes a command against the stored space of a
// session and stores the resulting space. A construction_space in the body
// is ignored. The session is created by its first successful command.
func (s *Server) runSessionCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if s.store == nil {
		s.respondError(w, http.StatusNotImplemented, errors.New("sessions are not configured"))
		return
	}
	req, err := command.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		resp    command.Response
		execErr error
	)
	err = s.store.Update(r.Context(), id, func(current *construction.Snapshot) (*construction.Snapshot, error) {
		req.Space = current
		resp, execErr = s.dispatcher.Execute(r.Context(), req)
		if execErr != nil {
			return nil, nil
		}
		return resp.Space, nil
	})
	if err != nil {
		s.logger.Error("session update failed", zap.String("session_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondCommand(w, resp, execErr)
}

// SessionView is the JSON form of a stored session.
type SessionView struct {
	ID        string                `json:"id"`
	Space     construction.Snapshot `json:"construction_space"`
	Summary   construction.Summary  `json:"summary"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if s.store == nil {
		s.respondError(w, http.StatusNotImplemented, errors.New("sessions are not configured"))
		return
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, id, err)
		return
	}
	view := SessionView{
		ID:        sess.ID,
		Space:     sess.Snapshot,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	if sp, err := construction.Restore(sess.Snapshot); err == nil {
		view.Summary = sp.Summary()
	} else {
		s.logger.Warn("stored session does not replay", zap.String("session_id", id), zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if s.store == nil {
		s.respondError(w, http.StatusNotImplemented, errors.New("sessions are not configured"))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondStoreError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusNotImplemented, errors.New("sessions are not configured"))
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.respondStoreError(w, "", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) respondCommand(w http.ResponseWriter, resp command.Response, err error) {
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	s.respondJSON(w, status, resp)
}

func (s *Server) respondStoreError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.respondJSON(w, http.StatusNotFound, command.Response{Error: &command.ErrorBody{
			Kind:    "SESSION_NOT_FOUND",
			Message: "session not found",
			ID:      id,
		}})
		return
	}
	s.logger.Error("store failure", zap.String("session_id", id), zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err)
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	body := command.Describe(err)
	s.respondJSON(w, status, command.Response{Error: &body})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// statusFor maps a command error to an HTTP status.
func statusFor(err error) int {
	var cerr *command.Error
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case command.KindBadRequest, command.KindUnknownCommand:
			return http.StatusBadRequest
		case command.KindValidation:
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}

	switch construction.KindOf(err) {
	case construction.KindPointNotFound:
		return http.StatusNotFound
	case construction.KindInvalidConstruction, construction.KindNoIntersections:
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	}
	return http.StatusInternalServerError
}
