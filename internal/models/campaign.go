package models

import "time"

// Campaign aggregates content items produced for one marketing goal,
// potentially across platforms.
type Campaign struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
}

// CampaignWithContent includes the campaign's content items for display.
type CampaignWithContent struct {
	Campaign
	Content []ContentItem `json:"content"`
}

// CampaignListFilter for filtering campaigns
type CampaignListFilter struct {
	Search string
	Limit  int
	Offset int
}
