package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sparclabs/sparc/internal/db"
	"github.com/sparclabs/sparc/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database.DB
}

func createTestPersona(t *testing.T, d *sql.DB) *models.Persona {
	t.Helper()

	p := &models.Persona{
		Name:           "Sarah",
		Role:           "Marketing Manager",
		Experience:     "5-10 years",
		Proficiency:    "intermediate",
		TonePreference: "professional",
		ContentStyles:  []string{"case studies", "how-to guides"},
		PainPoints:     "limited time, hard to measure ROI",
	}
	if err := NewPersonaRepository(d).Create(p); err != nil {
		t.Fatalf("failed to create persona: %v", err)
	}
	return p
}

func createTestCampaign(t *testing.T, d *sql.DB) *models.Campaign {
	t.Helper()

	c := &models.Campaign{
		Name: "Spring Launch",
		Goal: "Drive signups for the new analytics dashboard",
	}
	if err := NewCampaignRepository(d).Create(c); err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return c
}

func createTestContent(t *testing.T, d *sql.DB, campaignID, personaID, platform string) *models.ContentItem {
	t.Helper()

	item := &models.ContentItem{
		CampaignID:  campaignID,
		PersonaID:   personaID,
		ContentType: models.ContentTypeProduct,
		Platform:    platform,
		Tone:        "professional",
		Body:        "Introducing our new analytics dashboard.",
		Hashtags:    []string{"#analytics", "#launch"},
		Keywords:    []string{"analytics", "dashboard"},
	}
	if err := NewContentRepository(d).Save(item, "initial generation"); err != nil {
		t.Fatalf("failed to save content: %v", err)
	}
	return item
}

func createTestEntry(t *testing.T, d *sql.DB, contentID, platform, status string, at *time.Time) *models.ScheduleEntry {
	t.Helper()

	e := &models.ScheduleEntry{
		ContentID:   contentID,
		Platform:    platform,
		Status:      status,
		ScheduledAt: at,
	}
	if err := NewScheduleRepository(d).Create(e); err != nil {
		t.Fatalf("failed to create schedule entry: %v", err)
	}
	return e
}
