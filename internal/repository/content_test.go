package repository

import (
	"errors"
	"testing"

	"github.com/sparclabs/sparc/internal/models"
)

func TestContentSaveCreatesVersionOne(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	p := createTestPersona(t, d)
	c := createTestCampaign(t, d)
	item := createTestContent(t, d, c.ID, p.ID, models.PlatformTwitter)

	if item.Version != 1 {
		t.Errorf("expected version 1, got %d", item.Version)
	}

	got, err := repo.GetByID(item.ID)
	if err != nil {
		t.Fatalf("failed to get content: %v", err)
	}
	if got == nil {
		t.Fatal("expected content, got nil")
	}
	if got.Body != item.Body {
		t.Errorf("expected body %q, got %q", item.Body, got.Body)
	}
	if len(got.Hashtags) != 2 {
		t.Errorf("expected 2 hashtags, got %d", len(got.Hashtags))
	}
}

func TestContentSaveIncrementsVersion(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	p := createTestPersona(t, d)
	c := createTestCampaign(t, d)
	item := createTestContent(t, d, c.ID, p.ID, models.PlatformTwitter)
	firstID := item.ID

	item.Body = "Revised copy with a sharper hook."
	if err := repo.Save(item, "manual edit"); err != nil {
		t.Fatalf("failed to save revision: %v", err)
	}

	if item.ID != firstID {
		t.Errorf("revision should keep item ID %s, got %s", firstID, item.ID)
	}
	if item.Version != 2 {
		t.Errorf("expected version 2, got %d", item.Version)
	}

	got, err := repo.GetByCampaignPlatform(c.ID, models.PlatformTwitter)
	if err != nil {
		t.Fatalf("failed to get content: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("expected current version 2, got %d", got.Version)
	}
	if got.Body != "Revised copy with a sharper hook." {
		t.Errorf("unexpected body: %q", got.Body)
	}
}

func TestContentHistoryImmutable(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	p := createTestPersona(t, d)
	c := createTestCampaign(t, d)
	item := createTestContent(t, d, c.ID, p.ID, models.PlatformTwitter)
	originalBody := item.Body

	item.Body = "Second draft."
	if err := repo.Save(item, "edit one"); err != nil {
		t.Fatalf("failed to save revision: %v", err)
	}
	item.Body = "Third draft."
	if err := repo.Save(item, "edit two"); err != nil {
		t.Fatalf("failed to save revision: %v", err)
	}

	history, err := repo.GetHistory(item.ID)
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(history))
	}
	for i, v := range history {
		if v.Version != i+1 {
			t.Errorf("position %d: expected version %d, got %d", i, i+1, v.Version)
		}
	}
	if history[0].Body != originalBody {
		t.Errorf("version 1 body changed: %q", history[0].Body)
	}
	if history[1].Note != "edit one" {
		t.Errorf("expected note %q, got %q", "edit one", history[1].Note)
	}
	if history[2].Body != "Third draft." {
		t.Errorf("unexpected latest body: %q", history[2].Body)
	}
}

func TestContentSeparatePlatforms(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	p := createTestPersona(t, d)
	c := createTestCampaign(t, d)
	createTestContent(t, d, c.ID, p.ID, models.PlatformTwitter)
	createTestContent(t, d, c.ID, p.ID, models.PlatformEmail)

	items, err := repo.ListByCampaign(c.ID)
	if err != nil {
		t.Fatalf("failed to list content: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Version != 1 {
			t.Errorf("platform %s: expected independent version 1, got %d", item.Platform, item.Version)
		}
	}
}

func TestContentSaveValidation(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	cases := []struct {
		name  string
		item  models.ContentItem
		field string
	}{
		{"missing campaign", models.ContentItem{PersonaID: "p", Platform: models.PlatformTwitter, Body: "x"}, "campaign_id"},
		{"missing persona", models.ContentItem{CampaignID: "c", Platform: models.PlatformTwitter, Body: "x"}, "persona_id"},
		{"bad platform", models.ContentItem{CampaignID: "c", PersonaID: "p", Platform: "myspace", Body: "x"}, "platform"},
		{"bad content type", models.ContentItem{CampaignID: "c", PersonaID: "p", ContentType: "meme", Platform: models.PlatformTwitter, Body: "x"}, "content_type"},
		{"empty body", models.ContentItem{CampaignID: "c", PersonaID: "p", ContentType: models.ContentTypeProduct, Platform: models.PlatformTwitter, Body: "  "}, "body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Save(&tc.item, "")
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestContentGetMissing(t *testing.T) {
	d := setupTestDB(t)
	repo := NewContentRepository(d)

	got, err := repo.GetByID("no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing content, got %+v", got)
	}
}
