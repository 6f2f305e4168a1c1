package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sparclabs/sparc/internal/models"
)

// PersonaRequest is the request body for persona create/update
type PersonaRequest struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Experience     string   `json:"experience"`
	Proficiency    string   `json:"technical_proficiency"`
	TonePreference string   `json:"tone_preference"`
	ContentStyles  []string `json:"content_styles"`
	PainPoints     string   `json:"pain_points"`
}

func (req *PersonaRequest) apply(p *models.Persona) {
	p.Name = req.Name
	p.Role = req.Role
	p.Experience = req.Experience
	p.Proficiency = req.Proficiency
	p.TonePreference = req.TonePreference
	p.ContentStyles = req.ContentStyles
	p.PainPoints = req.PainPoints
}

// handlePersonaCreate handles POST /api/v1/personas
func (s *Server) handlePersonaCreate(w http.ResponseWriter, r *http.Request) {
	var req PersonaRequest
	if !s.decode(w, r, &req) {
		return
	}

	p := &models.Persona{}
	req.apply(p)

	if err := s.personas.Create(p); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("persona created", "persona_id", p.ID, "role", p.Role)
	s.sendJSON(w, http.StatusCreated, p)
}

// handlePersonaList handles GET /api/v1/personas
func (s *Server) handlePersonaList(w http.ResponseWriter, r *http.Request) {
	personas, err := s.personas.List()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, personas)
}

// handlePersonaGet handles GET /api/v1/personas/{id}
func (s *Server) handlePersonaGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.personas.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if p == nil {
		s.sendError(w, http.StatusNotFound, "Persona not found", "NOT_FOUND")
		return
	}
	s.sendJSON(w, http.StatusOK, p)
}

// handlePersonaUpdate handles PUT /api/v1/personas/{id}
func (s *Server) handlePersonaUpdate(w http.ResponseWriter, r *http.Request) {
	var req PersonaRequest
	if !s.decode(w, r, &req) {
		return
	}

	p := &models.Persona{ID: chi.URLParam(r, "id")}
	req.apply(p)

	if err := s.personas.Update(p); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, p)
}

// handlePersonaDelete handles DELETE /api/v1/personas/{id}
func (s *Server) handlePersonaDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.personas.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
