package models

import "time"

// Content types offered by the generation form.
const (
	ContentTypeLeadership    = "leadership"
	ContentTypeProduct       = "product"
	ContentTypeCustomerStory = "customer-story"
	ContentTypeTechnicalDoc  = "technical-doc"
)

// ValidContentType reports whether t is a known content type.
func ValidContentType(t string) bool {
	switch t {
	case ContentTypeLeadership, ContentTypeProduct, ContentTypeCustomerStory, ContentTypeTechnicalDoc:
		return true
	}
	return false
}

// ContentItem is a unit of generated text tied to a campaign and platform.
// Body and Version mirror the latest row in the version history.
type ContentItem struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	PersonaID   string    `json:"persona_id"`
	ContentType string    `json:"content_type"`
	Platform    string    `json:"platform"`
	Tone        string    `json:"tone"`
	Body        string    `json:"body"`
	Hashtags    []string  `json:"hashtags"`
	Keywords    []string  `json:"keywords"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContentVersion is one immutable entry in a content item's edit history.
type ContentVersion struct {
	ID        int64     `json:"id"`
	ContentID string    `json:"content_id"`
	Version   int       `json:"version"`
	Body      string    `json:"body"`
	Hashtags  []string  `json:"hashtags"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
