package models

import "time"

// Persona represents a target-audience profile used to contextualize
// generated content.
type Persona struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Experience     string    `json:"experience"`
	Proficiency    string    `json:"technical_proficiency"`
	TonePreference string    `json:"tone_preference"`
	ContentStyles  []string  `json:"content_styles"`
	PainPoints     string    `json:"pain_points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
