package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/kinetree"
	"github.com/aretw0/kinetree/internal/presentation/biomod"
	"github.com/aretw0/kinetree/pkg/adapters/file"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/geometry"
	"github.com/aretw0/kinetree/pkg/model"
	"github.com/aretw0/kinetree/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds POST /realize payloads.
const maxBodyBytes = 8 << 20

// Engine is the part of the kinetree facade the API needs.
type Engine interface {
	Realize(ctx context.Context, tpl *domain.Template, trial domain.Trial) (*model.RealModel, error)
	Save(ctx context.Context, m *model.RealModel) error
	Load(ctx context.Context, name string) (*model.RealModel, error)
	Models(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Server routes HTTP requests to an Engine.
type Server struct {
	Engine   Engine
	Registry *registry.Registry
	Metrics  http.Handler
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithRegistry sets the registry used for function references in posted templates.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) { s.Registry = reg }
}

// WithMetricsHandler replaces the default promhttp handler behind /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// RealizeRequest is the body of POST /realize. Template and Trial use the same
// document layout as template and trial files.
type RealizeRequest struct {
	Template map[string]any `json:"template"`
	Trial    map[string]any `json:"trial"`
	Store    bool           `json:"store,omitempty"`
}

// SegmentResponse is the body of GET /models/{name}/segments/{segment}.
type SegmentResponse struct {
	Segment model.SegmentDescription `json:"segment"`
	Global  geometry.Transform       `json:"global"`
}

// ErrorResponse is written for every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Class   string `json:"class,omitempty"`
	Segment string `json:"segment,omitempty"`
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Registry: registry.Default(),
		Metrics:  promhttp.Handler(),
		Logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", s.Metrics)
	r.Post("/realize", s.Realize)
	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.ListModels)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetModel)
			r.Delete("/", s.DeleteModel)
			r.Get("/biomod", s.GetBiomod)
			r.Get("/segments/{segment}", s.GetSegment)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Realize handles POST /realize.
func (s *Server) Realize(w http.ResponseWriter, r *http.Request) {
	var body RealizeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Template == nil || body.Trial == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("template and trial are required"))
		return
	}

	tpl, err := file.DecodeTemplate(body.Template, s.Registry)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	trial, err := file.DecodeTrial(body.Trial)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid trial: %w", err))
		return
	}

	m, err := s.Engine.Realize(r.Context(), tpl, trial)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	status := http.StatusOK
	if body.Store {
		if err := s.Engine.Save(r.Context(), m); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		status = http.StatusCreated
	}
	s.writeJSON(w, status, m.Export())
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Models(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"models": names})
}

// GetModel handles GET /models/{name}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, m.Export())
}

// DeleteModel handles DELETE /models/{name}.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBiomod handles GET /models/{name}/biomod.
func (s *Server) GetBiomod(w http.ResponseWriter, r *http.Request) {
	m, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := biomod.Write(w, m.Export()); err != nil {
		s.Logger.Error("biomod response write failed", "err", err)
	}
}

// GetSegment handles GET /models/{name}/segments/{segment}.
func (s *Server) GetSegment(w http.ResponseWriter, r *http.Request) {
	m, ok := s.load(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "segment")
	global, err := m.GlobalTransform(name)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	for _, sd := range m.Export().Segments {
		if sd.Name == name {
			s.writeJSON(w, http.StatusOK, SegmentResponse{Segment: sd, Global: global})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, domain.ErrSegmentNotFound)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": kinetree.Version,
	})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*model.RealModel, bool) {
	m, err := s.Engine.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return nil, false
	}
	return m, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrModelNotFound), errors.Is(err, domain.ErrSegmentNotFound):
		return http.StatusNotFound
	case domain.IsAuthoringError(err), domain.IsTrialError(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func classOf(err error) string {
	switch {
	case domain.IsAuthoringError(err):
		return "authoring"
	case domain.IsTrialError(err):
		return "trial"
	}
	return ""
}

func segmentOf(err error) string {
	var te *domain.TemplateError
	if errors.As(err, &te) {
		return te.Segment
	}
	var re *domain.ResolutionError
	if errors.As(err, &re) {
		return re.Segment
	}
	var ae *domain.AxisError
	if errors.As(err, &ae) {
		return ae.Segment
	}
	return ""
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{
		Error:   err.Error(),
		Class:   classOf(err),
		Segment: segmentOf(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
