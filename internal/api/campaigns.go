package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sparclabs/sparc/internal/models"
)

// CampaignRequest is the request body for campaign creation
type CampaignRequest struct {
	Name string `json:"name"`
	Goal string `json:"goal"`
}

// handleCampaignCreate handles POST /api/v1/campaigns
func (s *Server) handleCampaignCreate(w http.ResponseWriter, r *http.Request) {
	var req CampaignRequest
	if !s.decode(w, r, &req) {
		return
	}

	c := &models.Campaign{Name: req.Name, Goal: req.Goal}
	if err := s.campaigns.Create(c); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("campaign created", "campaign_id", c.ID, "name", c.Name)
	s.sendJSON(w, http.StatusCreated, c)
}

// handleCampaignList handles GET /api/v1/campaigns
func (s *Server) handleCampaignList(w http.ResponseWriter, r *http.Request) {
	filter := models.CampaignListFilter{
		Search: r.URL.Query().Get("search"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	campaigns, err := s.campaigns.List(filter)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, campaigns)
}

// handleCampaignGet handles GET /api/v1/campaigns/{id}
func (s *Server) handleCampaignGet(w http.ResponseWriter, r *http.Request) {
	c, err := s.campaigns.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if c == nil {
		s.sendError(w, http.StatusNotFound, "Campaign not found", "NOT_FOUND")
		return
	}
	s.sendJSON(w, http.StatusOK, c)
}

// handleCampaignContent handles GET /api/v1/campaigns/{id}/content
func (s *Server) handleCampaignContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := s.campaigns.GetByID(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if c == nil {
		s.sendError(w, http.StatusNotFound, "Campaign not found", "NOT_FOUND")
		return
	}

	items, err := s.content.ListByCampaign(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.sendJSON(w, http.StatusOK, models.CampaignWithContent{Campaign: *c, Content: items})
}
