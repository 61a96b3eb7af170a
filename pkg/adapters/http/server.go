package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/logging"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/observability"
	"github.com/aretw0/enigma/pkg/runner"
	"github.com/aretw0/enigma/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server serves the machine over HTTP.
// Stateless encoding builds a fresh machine per request; sessions go through the Manager.
type Server struct {
	Sessions *session.Manager
	Metrics  *observability.Metrics
	Streams  *StreamManager
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records request and machine metrics and serves them on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// EncodeRequest is the body of POST /encode and POST /sessions/{id}/encode.
// Positions only applies to stateless encoding.
type EncodeRequest struct {
	Text      string `json:"text"`
	Positions []int  `json:"positions,omitempty"`
}

// EncodeResponse carries the output and the rotor positions after encoding.
type EncodeResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Output    string `json:"output"`
	Positions []int  `json:"positions"`
	Window    string `json:"window"`
}

// SessionResponse describes a stored session.
type SessionResponse struct {
	*domain.Snapshot
	Window string `json:"window"`
}

// NewHandler creates a new HTTP handler around the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.Metrics != nil {
		r.Use(s.instrument)
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/config", s.GetConfig)
	r.Post("/encode", s.Encode)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/encode", s.EncodeSession)
		r.Post("/{id}/reset", s.ResetSession)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records request count and latency by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.Metrics.RecordHTTPRequest(r.Method, path, status, time.Since(start))
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	cfg := s.Sessions.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"app":     "enigma-http",
		"version": strings.TrimSpace(enigma.Version),
		"machine": cfg.Name,
		"rotors":  len(cfg.Rotors),
	})
}

// GetConfig handles the GET /config request.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.Config())
}

// Encode handles the stateless POST /encode request.
func (s *Server) Encode(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeEncodeRequest(w, r)
	if !ok {
		return
	}

	opts := []enigma.Option{enigma.WithLogger(s.Logger)}
	if req.Positions != nil {
		opts = append(opts, enigma.WithPositions(req.Positions))
	}
	if s.Metrics != nil {
		opts = append(opts, enigma.WithLifecycleHooks(s.Metrics.Hooks()))
	}

	m, err := enigma.New(s.Sessions.Config(), opts...)
	if err != nil {
		s.fail(w, "Encode", err)
		return
	}

	out := m.EncodeMessageContext(r.Context(), req.Text)
	s.recordMessage()

	writeJSON(w, http.StatusOK, EncodeResponse{
		Output:    out,
		Positions: m.Positions(),
		Window:    m.Window(),
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	snap, err := s.Sessions.Create(r.Context(), id)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.Logger.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, sessionResponse(snap))
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(snap))
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EncodeSession handles the POST /sessions/{id}/encode request.
func (s *Server) EncodeSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := s.decodeEncodeRequest(w, r)
	if !ok {
		return
	}

	out, snap, err := s.Sessions.Encode(r.Context(), id, req.Text)
	if err != nil {
		s.fail(w, "EncodeSession", err)
		return
	}
	s.recordMessage()
	s.broadcast(snap)

	writeJSON(w, http.StatusOK, EncodeResponse{
		SessionID: id,
		Output:    out,
		Positions: snap.Positions,
		Window:    domain.Window(snap.Positions),
	})
}

// ResetSession handles the POST /sessions/{id}/reset request.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "ResetSession", err)
		return
	}
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, sessionResponse(snap))
}

func (s *Server) decodeEncodeRequest(w http.ResponseWriter, r *http.Request) (EncodeRequest, bool) {
	var req EncodeRequest
	body := io.LimitReader(r.Body, int64(runner.MaxInputSize())*2+1024)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return req, false
	}

	clean, err := runner.SanitizeInput(req.Text)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Input rejected", "error", err, "size", len(req.Text))
		return req, false
	}
	req.Text = clean
	return req, true
}

func (s *Server) recordMessage() {
	if s.Metrics != nil {
		s.Metrics.RecordMessage("http")
	}
}

func (s *Server) broadcast(snap *domain.Snapshot) {
	if data, err := json.Marshal(sessionResponse(snap)); err == nil {
		s.Streams.Broadcast(snap.SessionID, string(data))
	}
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrPositionCount), errors.Is(err, domain.ErrInvalidPosition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "error", err)
	}
}

func sessionResponse(snap *domain.Snapshot) SessionResponse {
	return SessionResponse{Snapshot: snap, Window: domain.Window(snap.Positions)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
