// Package server exposes the tutoring loop over HTTP for the dashboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vidyayathra/tutor/internal/hints"
	"github.com/vidyayathra/tutor/internal/questiongen"
	"github.com/vidyayathra/tutor/internal/tutor"
)

// Server wraps the tutor service behind an HTTP API.
type Server struct {
	tutor  *tutor.Service
	logger *slog.Logger
	http   *http.Server
}

// Config holds the HTTP listener settings.
type Config struct {
	Port int

	// AllowedOrigin is the CORS origin granted to the dashboard.
	// "*" allows any origin.
	AllowedOrigin string
}

// DefaultConfig returns the development defaults the dashboard expects.
func DefaultConfig() Config {
	return Config{
		Port:          3001,
		AllowedOrigin: "*",
	}
}

// New builds a Server. logger may be nil.
func New(svc *tutor.Service, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{tutor: svc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/turn", s.handleTurn)
	mux.HandleFunc("POST /api/hint", s.handleHint)
	mux.HandleFunc("POST /api/evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /api/review", s.handleReview)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withCORS(cfg.AllowedOrigin, s.withLogging(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the server until the listener fails or Shutdown
// is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req tutor.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.tutor.HandleTurn(r.Context(), req)
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question   string `json:"question"`
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	h, err := s.tutor.Hint(r.Context(), hints.Request{
		Question:   req.Question,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		s.logger.Error("hint failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req tutor.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Answer == "" {
		s.writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	resp, err := s.tutor.Evaluate(r.Context(), req)
	if err != nil {
		s.logger.Error("evaluate failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learnerId")

	plan, err := s.tutor.ReviewPlan(r.Context(), learnerID)
	if err != nil {
		s.logger.Error("review plan failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reviews": plan})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeTurnError maps turn failures onto the status codes the dashboard
// handles: 400 for caller mistakes, 500 for generation failures.
func (s *Server) writeTurnError(w http.ResponseWriter, err error) {
	if errors.Is(err, tutor.ErrEmptyMessage) {
		s.writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	var genErr *questiongen.GenerationError
	if errors.As(err, &genErr) {
		s.logger.Error("generation failed", "reason", genErr.Reason, "error", err)
	} else {
		s.logger.Error("turn failed", "error", err)
	}
	s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withCORS grants the dashboard origin and answers preflights.
func (s *Server) withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
