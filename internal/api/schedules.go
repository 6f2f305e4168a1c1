package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sparclabs/sparc/internal/models"
)

// ScheduleRequest is the request body for POST /schedules
type ScheduleRequest struct {
	ContentID   string     `json:"content_id"`
	Platform    string     `json:"platform"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Recipients  []string   `json:"recipients,omitempty"`
	Draft       bool       `json:"draft,omitempty"`
}

// handleScheduleCreate handles POST /api/v1/schedules
func (s *Server) handleScheduleCreate(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !s.decode(w, r, &req) {
		return
	}

	var entry *models.ScheduleEntry
	var err error

	if req.Draft {
		entry, err = s.scheduler.Draft(req.ContentID, req.Platform, req.Recipients)
	} else {
		if req.ScheduledAt == nil {
			s.sendError(w, http.StatusBadRequest, "scheduled_at is required", "VALIDATION")
			return
		}
		entry, err = s.scheduler.Schedule(req.ContentID, req.Platform, *req.ScheduledAt, req.Recipients)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.sendJSON(w, http.StatusCreated, entry)
}

// handleScheduleList handles GET /api/v1/schedules
func (s *Server) handleScheduleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.scheduler.ListByStatus(r.URL.Query().Get("status"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, entries)
}

// handleScheduleGet handles GET /api/v1/schedules/{id}
func (s *Server) handleScheduleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.scheduler.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, entry)
}

// TimeRequest carries a publish time for set-time and retry actions
type TimeRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// handleScheduleSetTime handles POST /api/v1/schedules/{id}/time
func (s *Server) handleScheduleSetTime(w http.ResponseWriter, r *http.Request) {
	var req TimeRequest
	if !s.decode(w, r, &req) {
		return
	}

	entry, err := s.scheduler.SetTime(chi.URLParam(r, "id"), req.ScheduledAt)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, entry)
}

// handleScheduleRetry handles POST /api/v1/schedules/{id}/retry. Retrying a
// failed entry is always an explicit user action.
func (s *Server) handleScheduleRetry(w http.ResponseWriter, r *http.Request) {
	var req TimeRequest
	if !s.decode(w, r, &req) {
		return
	}

	entry, err := s.scheduler.Retry(chi.URLParam(r, "id"), req.ScheduledAt)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, entry)
}

// RunResponse is the response for POST /schedules/run
type RunResponse struct {
	Published int                    `json:"published"`
	Failed    int                    `json:"failed"`
	Entries   []models.ScheduleEntry `json:"entries"`
}

// handleScheduleRun handles POST /api/v1/schedules/run: one publish pass
// over the due entries. This is the boundary call that replaces any
// background scheduling primitive.
func (s *Server) handleScheduleRun(w http.ResponseWriter, r *http.Request) {
	entries, err := s.scheduler.RunDue(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := RunResponse{Entries: entries}
	for _, e := range entries {
		if e.Status == models.StatusPublished {
			resp.Published++
			s.metrics.PublishAttemptsTotal.WithLabelValues(e.Platform, "published").Inc()
		} else {
			resp.Failed++
			s.metrics.PublishAttemptsTotal.WithLabelValues(e.Platform, "failed").Inc()
		}
	}

	s.sendJSON(w, http.StatusOK, resp)
}
