package models

import "time"

// Schedule entry statuses. Published and failed are terminal; a failed
// entry leaves failed only through an explicit retry.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Supported delivery platforms.
const (
	PlatformTwitter  = "twitter"
	PlatformEmail    = "email"
	PlatformLinkedIn = "linkedin"
	PlatformBlog     = "blog"
)

// ValidPlatform reports whether p is a known platform name.
func ValidPlatform(p string) bool {
	switch p {
	case PlatformTwitter, PlatformEmail, PlatformLinkedIn, PlatformBlog:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known schedule status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusFailed:
		return true
	}
	return false
}

// ScheduleEntry tracks when and whether a content item was or will be
// published to a platform.
type ScheduleEntry struct {
	ID            string     `json:"id"`
	ContentID     string     `json:"content_id"`
	Platform      string     `json:"platform"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Status        string     `json:"status"`
	Recipients    []string   `json:"recipients,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	ExternalRef   string     `json:"external_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ScheduleListFilter for filtering schedule entries
type ScheduleListFilter struct {
	Status   string
	Platform string
	Limit    int
	Offset   int
}
