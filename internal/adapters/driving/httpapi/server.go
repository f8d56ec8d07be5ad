// Package httpapi exposes question answering over HTTP for browser
// frontends. The surface is deliberately small: one query endpoint plus a
// health check, with CORS handled inline.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driving"
	"github.com/askitty/askitty/internal/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 5 * time.Minute // answer synthesis can be slow
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (default :8080).
	Addr string

	// AllowedOrigin is the CORS origin echoed on every response
	// (default "*").
	AllowedOrigin string
}

// Server serves the query API.
type Server struct {
	query  driving.QueryService
	origin string
	http   *http.Server
}

// queryRequest is the /api/query request body.
type queryRequest struct {
	Question string `json:"question"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates an HTTP server over the query service.
func NewServer(query driving.QueryService, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	s := &Server{
		query:  query,
		origin: cfg.AllowedOrigin,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/health", s.handleHealth)

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}
	return s
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	logger.Info("HTTP API listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	// A malformed body reads as an empty question.
	var req queryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer, err := s.query.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrMissingQuestion) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing question"})
			return
		}
		logger.Warn("Query failed: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", s.origin)
	h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
	h.Set("Access-Control-Allow-Methods", "OPTIONS,POST")
	h.Set("Access-Control-Max-Age", "3600")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Encode response: %v", err)
	}
}
