package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

// ErrPersonaInUse is returned when deleting a persona that is still
// referenced by content.
var ErrPersonaInUse = fmt.Errorf("persona is referenced by generated content")

type PersonaRepository struct {
	db *sql.DB
}

func NewPersonaRepository(db *sql.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// Create creates a new persona
func (r *PersonaRepository) Create(p *models.Persona) error {
	if err := validatePersona(p); err != nil {
		return err
	}

	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO personas (id, name, role, experience, technical_proficiency, tone_preference, content_styles, pain_points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Role, p.Experience, p.Proficiency, p.TonePreference, marshalList(p.ContentStyles), p.PainPoints, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create persona: %w", err)
	}
	return nil
}

// GetByID returns a persona by ID
func (r *PersonaRepository) GetByID(id string) (*models.Persona, error) {
	p := &models.Persona{}
	var styles string
	err := r.db.QueryRow(`
		SELECT id, name, role, experience, technical_proficiency, tone_preference, content_styles, pain_points, created_at, updated_at
		FROM personas WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Role, &p.Experience, &p.Proficiency, &p.TonePreference, &styles, &p.PainPoints, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.ContentStyles = unmarshalList(styles)
	return p, nil
}

// List returns all personas sorted by name for display
func (r *PersonaRepository) List() ([]models.Persona, error) {
	rows, err := r.db.Query(`
		SELECT id, name, role, experience, technical_proficiency, tone_preference, content_styles, pain_points, created_at, updated_at
		FROM personas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	personas := []models.Persona{}
	for rows.Next() {
		var p models.Persona
		var styles string
		err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Experience, &p.Proficiency, &p.TonePreference, &styles, &p.PainPoints, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.ContentStyles = unmarshalList(styles)
		personas = append(personas, p)
	}

	return personas, rows.Err()
}

// Update updates a persona
func (r *PersonaRepository) Update(p *models.Persona) error {
	if err := validatePersona(p); err != nil {
		return err
	}

	p.UpdatedAt = time.Now()
	res, err := r.db.Exec(`
		UPDATE personas SET name = ?, role = ?, experience = ?, technical_proficiency = ?, tone_preference = ?, content_styles = ?, pain_points = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Role, p.Experience, p.Proficiency, p.TonePreference, marshalList(p.ContentStyles), p.PainPoints, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a persona. Deletion is rejected while generated content
// still references the persona.
func (r *PersonaRepository) Delete(id string) error {
	var refs int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM content_items WHERE persona_id = ?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrPersonaInUse
	}

	res, err := r.db.Exec("DELETE FROM personas WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func validatePersona(p *models.Persona) error {
	if strings.TrimSpace(p.Role) == "" {
		return models.Validationf("role", "is required")
	}
	if strings.TrimSpace(p.Experience) == "" {
		return models.Validationf("experience", "is required")
	}
	return nil
}
