package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sparclabs/sparc/internal/generator"
	"github.com/sparclabs/sparc/internal/models"
	"github.com/sparclabs/sparc/internal/repository"
	"github.com/sparclabs/sparc/internal/scheduler"
)

// ErrorResponse is the error response body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Version is set at build time
var Version = "dev"

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

// sendJSON sends a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON", "error", err)
	}
}

// sendError sends an error response with a machine-readable code
func (s *Server) sendError(w http.ResponseWriter, status int, message, code string) {
	s.sendJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeDomainError maps domain errors to HTTP responses. No error is
// silently swallowed: anything unexpected logs and answers 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		s.sendError(w, http.StatusBadRequest, ve.Error(), "VALIDATION")
	case errors.Is(err, repository.ErrNotFound):
		s.sendError(w, http.StatusNotFound, "Not found", "NOT_FOUND")
	case errors.Is(err, repository.ErrPersonaInUse):
		s.sendError(w, http.StatusConflict, err.Error(), "PERSONA_IN_USE")
	case errors.Is(err, scheduler.ErrInvalidTransition):
		s.sendError(w, http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, generator.ErrUpstreamUnavailable):
		s.sendError(w, http.StatusBadGateway, err.Error(), "UPSTREAM_UNAVAILABLE")
	case errors.Is(err, generator.ErrInvalidResponse):
		s.sendError(w, http.StatusBadGateway, err.Error(), "INVALID_RESPONSE")
	default:
		s.logger.Error("internal error", "error", err)
		s.sendError(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}

// decode parses a JSON request body
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body", "INVALID_JSON")
		return false
	}
	return true
}
