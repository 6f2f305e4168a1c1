package api

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/sparclabs/sparc/internal/models"
)

// GenerateRequest is the request body for POST /generate
type GenerateRequest struct {
	PersonaID   string   `json:"persona_id"`
	CampaignID  string   `json:"campaign_id,omitempty"`
	Goal        string   `json:"goal,omitempty"`
	ContentType string   `json:"content_type"`
	Platform    string   `json:"platform,omitempty"`
	Tone        string   `json:"tone"`
	Keywords    []string `json:"keywords,omitempty"`
	Save        bool     `json:"save,omitempty"`
}

// GenerateResponse is the response for POST /generate
type GenerateResponse struct {
	Text     string              `json:"text"`
	Hashtags []string            `json:"hashtags"`
	Content  *models.ContentItem `json:"content,omitempty"`
}

// handleGenerate handles POST /api/v1/generate. The call blocks until the
// external generation service answers; failures surface unretried.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !s.decode(w, r, &req) {
		return
	}

	persona, err := s.personas.GetByID(req.PersonaID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if persona == nil {
		s.sendError(w, http.StatusNotFound, "Persona not found", "NOT_FOUND")
		return
	}

	goal := req.Goal
	if goal == "" && req.CampaignID != "" {
		campaign, err := s.campaigns.GetByID(req.CampaignID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		if campaign == nil {
			s.sendError(w, http.StatusNotFound, "Campaign not found", "NOT_FOUND")
			return
		}
		goal = campaign.Goal
	}

	start := time.Now()
	result, err := s.generator.Generate(r.Context(), persona, goal, req.ContentType, req.Tone, req.Keywords)
	s.metrics.GenerationDurationSecs.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.GenerationsTotal.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)
		return
	}
	s.metrics.GenerationsTotal.WithLabelValues("ok").Inc()

	resp := GenerateResponse{Text: result.Text, Hashtags: result.Hashtags}

	// Persist as a content version when the caller asked for it
	if req.Save && req.CampaignID != "" {
		item := &models.ContentItem{
			CampaignID:  req.CampaignID,
			PersonaID:   persona.ID,
			ContentType: req.ContentType,
			Platform:    req.Platform,
			Tone:        req.Tone,
			Body:        result.Text,
			Hashtags:    result.Hashtags,
			Keywords:    req.Keywords,
		}
		if err := s.content.Save(item, "generated"); err != nil {
			s.writeDomainError(w, err)
			return
		}
		resp.Content = item
	}

	s.sendJSON(w, http.StatusOK, resp)
}

// OptimizeRequest is the request body for POST /generate/twitter
type OptimizeRequest struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// handleOptimizeTwitter handles POST /api/v1/generate/twitter
func (s *Server) handleOptimizeTwitter(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		s.sendError(w, http.StatusBadRequest, "text is required", "VALIDATION")
		return
	}

	text, err := s.generator.OptimizeForTwitter(r.Context(), req.Text, req.Hashtags)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"text":       text,
		"char_count": utf8.RuneCountInString(text),
	})
}

// handleFormatEmail handles POST /api/v1/generate/email
func (s *Server) handleFormatEmail(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		s.sendError(w, http.StatusBadRequest, "text is required", "VALIDATION")
		return
	}

	email, err := s.generator.FormatEmail(r.Context(), req.Text)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, email)
}

// ContentSaveRequest is the request body for POST /content
type ContentSaveRequest struct {
	CampaignID  string   `json:"campaign_id"`
	PersonaID   string   `json:"persona_id"`
	ContentType string   `json:"content_type"`
	Platform    string   `json:"platform"`
	Tone        string   `json:"tone"`
	Body        string   `json:"body"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// handleContentSave handles POST /api/v1/content. Saving for an existing
// (campaign, platform) pair appends a new version.
func (s *Server) handleContentSave(w http.ResponseWriter, r *http.Request) {
	var req ContentSaveRequest
	if !s.decode(w, r, &req) {
		return
	}

	item := &models.ContentItem{
		CampaignID:  req.CampaignID,
		PersonaID:   req.PersonaID,
		ContentType: req.ContentType,
		Platform:    req.Platform,
		Tone:        req.Tone,
		Body:        req.Body,
		Hashtags:    req.Hashtags,
		Keywords:    req.Keywords,
	}
	if err := s.content.Save(item, req.Note); err != nil {
		s.writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if item.Version == 1 {
		status = http.StatusCreated
	}
	s.sendJSON(w, status, item)
}

// handleContentGet handles GET /api/v1/content/{id}
func (s *Server) handleContentGet(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if item == nil {
		s.sendError(w, http.StatusNotFound, "Content not found", "NOT_FOUND")
		return
	}
	s.sendJSON(w, http.StatusOK, item)
}

// handleContentHistory handles GET /api/v1/content/{id}/history
func (s *Server) handleContentHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := s.content.GetByID(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if item == nil {
		s.sendError(w, http.StatusNotFound, "Content not found", "NOT_FOUND")
		return
	}

	history, err := s.content.GetHistory(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, history)
}
