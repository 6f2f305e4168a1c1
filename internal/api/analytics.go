package api

import (
	"net/http"
	"time"

	"github.com/sparclabs/sparc/internal/models"
)

// MetricRequest is the request body for POST /analytics
type MetricRequest struct {
	ScheduleEntryID string  `json:"schedule_entry_id"`
	Metric          string  `json:"metric"`
	Value           float64 `json:"value"`
}

// handleAnalyticsRecord handles POST /api/v1/analytics
func (s *Server) handleAnalyticsRecord(w http.ResponseWriter, r *http.Request) {
	var req MetricRequest
	if !s.decode(w, r, &req) {
		return
	}

	rec, err := s.analytics.RecordMetric(req.ScheduleEntryID, req.Metric, req.Value)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.metrics.MetricsRecordedTotal.WithLabelValues(rec.Metric).Inc()
	s.sendJSON(w, http.StatusCreated, rec)
}

// handleAnalyticsSummary handles GET /api/v1/analytics/summary
func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	filter := models.AnalyticsFilter{
		Platform: r.URL.Query().Get("platform"),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, "from must be RFC 3339", "VALIDATION")
			return
		}
		filter.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, "to must be RFC 3339", "VALIDATION")
			return
		}
		filter.To = &t
	}

	summary, err := s.analytics.Summarize(filter)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, summary)
}
