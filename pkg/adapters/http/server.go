// Package http exposes the engine boundary over a JSON API. This is the
// surface the UI collaborator calls; it owns no page rendering.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
)

// Engine defines the interface for the curriculum engine core.
type Engine interface {
	Plans(ctx context.Context) ([]string, error)
	StartSession(ctx context.Context, sessionID, planID string) (map[string]domain.Eligibility, error)
	LoadDocument(ctx context.Context, sessionID, name string, doc plan.Document) (map[string]domain.Eligibility, error)
	Eligibility(ctx context.Context, sessionID string) (map[string]domain.Eligibility, error)
	UpdateStatus(ctx context.Context, sessionID, code string, status domain.Status) (map[string]domain.Eligibility, error)
	UpdateGroup(ctx context.Context, sessionID, code string, status domain.Status) (map[string]domain.Eligibility, error)
	Groups(ctx context.Context, sessionID string) ([]domain.CoreqGroup, error)
	Export(ctx context.Context, sessionID string) (plan.Document, error)
	Reset(ctx context.Context, sessionID string) (map[string]domain.Eligibility, error)
	EndSession(ctx context.Context, sessionID string) error
	Name(ctx context.Context, sessionID string) (string, error)
}

// Server wires the engine to the router.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine. The prometheus
// gatherer backs GET /metrics; pass the same registry the engine was
// configured with.
func NewHandler(engine Engine, gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	server := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/plans", server.GetPlans)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Post("/sessions", server.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/eligibility", server.GetEligibility)
		r.Get("/groups", server.GetGroups)
		r.Get("/export", server.ExportProgress)
		r.Post("/reset", server.ResetSession)
		r.Delete("/", server.DeleteSession)
		r.Put("/courses/{code}", server.UpdateCourse)
		r.Put("/groups/{code}", server.UpdateGroup)
	})

	r.Get("/events", server.SubscribeEvents)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -- Request/response shapes --

// CreateSessionRequest starts a session either from a known plan ID or
// from an uploaded document (the courses field).
type CreateSessionRequest struct {
	SessionID string         `json:"session_id"`
	PlanID    string         `json:"plan_id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Courses   map[string]any `json:"courses,omitempty"`
}

// UpdateStatusRequest carries the new status for a course or group.
type UpdateStatusRequest struct {
	Status int `json:"status"`
}

// EligibilityResponse is the mapping returned after every mutation.
type EligibilityResponse struct {
	SessionID   string                        `json:"session_id"`
	Eligibility map[string]domain.Eligibility `json:"eligibility"`
}

// GroupView is one enrollable co-requisite package.
type GroupView struct {
	Codes []string `json:"codes"`
}

// -- Handlers --

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "espalier-http",
		"version": espalier.Version,
	})
}

// GetPlans handles the GET /plans request.
func (s *Server) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.Engine.Plans(r.Context())
	if err != nil {
		s.fail(w, err, "list plans failed")
		return
	}
	if plans == nil {
		plans = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"plans": plans})
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: invalid request body", "error", err)
		return
	}
	if body.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	var (
		elig map[string]domain.Eligibility
		err  error
	)
	switch {
	case body.PlanID != "":
		elig, err = s.Engine.StartSession(r.Context(), body.SessionID, body.PlanID)
	case body.Courses != nil:
		name := body.Name
		if name == "" {
			name = "uploaded"
		}
		var doc plan.Document
		doc, err = plan.Decode(body.Courses)
		if err == nil {
			elig, err = s.Engine.LoadDocument(r.Context(), body.SessionID, name, doc)
		}
	default:
		http.Error(w, "either plan_id or courses is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.failLoad(w, err)
		return
	}

	s.broadcast(body.SessionID, nil, elig)
	writeJSON(w, http.StatusCreated, EligibilityResponse{SessionID: body.SessionID, Eligibility: elig})
}

// GetEligibility handles the GET /sessions/{id}/eligibility request.
func (s *Server) GetEligibility(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	elig, err := s.Engine.Eligibility(r.Context(), sessionID)
	if err != nil {
		s.fail(w, err, "eligibility failed")
		return
	}
	writeJSON(w, http.StatusOK, EligibilityResponse{SessionID: sessionID, Eligibility: elig})
}

// UpdateCourse handles the PUT /sessions/{id}/courses/{code} request.
// The status mutation and the full recompute run as one atomic sequence;
// on error the prior progress is untouched.
func (s *Server) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	s.updateWith(w, r, s.Engine.UpdateStatus)
}

// UpdateGroup handles the PUT /sessions/{id}/groups/{code} request,
// applying the status to the whole co-requisite package.
func (s *Server) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	s.updateWith(w, r, s.Engine.UpdateGroup)
}

func (s *Server) updateWith(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, string, domain.Status) (map[string]domain.Eligibility, error)) {
	sessionID := chi.URLParam(r, "id")
	code := chi.URLParam(r, "code")

	var body UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("update: invalid request body", "error", err)
		return
	}

	status := domain.Status(body.Status)
	if !status.Valid() {
		http.Error(w, "status must be 0, 1 or 2", http.StatusBadRequest)
		return
	}

	// Previous mapping, for the diff broadcast. Best effort: a failure
	// here only degrades the SSE delta to a full snapshot.
	old, _ := s.Engine.Eligibility(r.Context(), sessionID)

	elig, err := apply(r.Context(), sessionID, code, status)
	if err != nil {
		s.fail(w, err, "update failed")
		return
	}

	s.broadcast(sessionID, old, elig)
	writeJSON(w, http.StatusOK, EligibilityResponse{SessionID: sessionID, Eligibility: elig})
}

// GetGroups handles the GET /sessions/{id}/groups request.
func (s *Server) GetGroups(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	groups, err := s.Engine.Groups(r.Context(), sessionID)
	if err != nil {
		s.fail(w, err, "groups failed")
		return
	}

	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, GroupView{Codes: g.Codes})
	}
	writeJSON(w, http.StatusOK, map[string][]GroupView{"groups": views})
}

// ExportProgress handles the GET /sessions/{id}/export request. The body
// is the plan document with current statuses, served as a download.
func (s *Server) ExportProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	doc, err := s.Engine.Export(r.Context(), sessionID)
	if err != nil {
		s.fail(w, err, "export failed")
		return
	}

	data, err := plan.EncodeJSON(doc)
	if err != nil {
		s.fail(w, err, "export encode failed")
		return
	}

	name, _ := s.Engine.Name(r.Context(), sessionID)
	if name == "" {
		name = sessionID
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"_progress.json"))
	w.Write(data)
}

// ResetSession handles the POST /sessions/{id}/reset request.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	old, _ := s.Engine.Eligibility(r.Context(), sessionID)
	elig, err := s.Engine.Reset(r.Context(), sessionID)
	if err != nil {
		s.fail(w, err, "reset failed")
		return
	}

	s.broadcast(sessionID, old, elig)
	writeJSON(w, http.StatusOK, EligibilityResponse{SessionID: sessionID, Eligibility: elig})
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := s.Engine.EndSession(r.Context(), sessionID); err != nil {
		s.fail(w, err, "end session failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Error mapping --

// fail maps engine errors to HTTP statuses per the error taxonomy:
// unknown session or course -> 404, invariant violations -> 500,
// everything else -> 500.
func (s *Server) fail(w http.ResponseWriter, err error, msg string) {
	var unknown *domain.UnknownCourseError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &unknown):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
		s.logger.Error(msg, "error", err)
	}
}

// failLoad maps load-time errors: anything the compiler or decoder
// rejected is the client's document, not a server fault.
func (s *Server) failLoad(w http.ResponseWriter, err error) {
	var (
		refErr   *domain.ReferenceError
		selfErr  *domain.SelfReferenceError
		cycleErr *domain.CycleError
		aggErr   *plan.AggregateError
	)
	if errors.As(err, &refErr) || errors.As(err, &selfErr) || errors.As(err, &cycleErr) || errors.As(err, &aggErr) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.fail(w, err, "session start failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func (s *Server) broadcast(sessionID string, old, new map[string]domain.Eligibility) {
	diff := domain.DiffEligibility(sessionID, old, new)
	if diff.IsEmpty() {
		return
	}
	if bytes, err := json.Marshal(diff); err == nil {
		s.Streams.Broadcast(sessionID, string(bytes))
	}
}
