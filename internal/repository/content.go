package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Save stores a content item. The first save for a (campaign, platform)
// pair creates the item at version 1; later saves append a new version and
// never touch prior version rows.
func (r *ContentRepository) Save(item *models.ContentItem, note string) error {
	if err := validateContent(item); err != nil {
		return err
	}

	existing, err := r.GetByCampaignPlatform(item.CampaignID, item.Platform)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	if existing == nil {
		item.ID = uuid.New().String()
		item.Version = 1
		item.CreatedAt = now
		item.UpdatedAt = now

		_, err = tx.Exec(`
			INSERT INTO content_items (id, campaign_id, persona_id, content_type, platform, tone, body, hashtags, keywords, current_version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.CampaignID, item.PersonaID, item.ContentType, item.Platform, item.Tone,
			item.Body, marshalList(item.Hashtags), marshalList(item.Keywords), item.Version, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create content item: %w", err)
		}
	} else {
		item.ID = existing.ID
		item.Version = existing.Version + 1
		item.CreatedAt = existing.CreatedAt
		item.UpdatedAt = now

		_, err = tx.Exec(`
			UPDATE content_items SET persona_id = ?, content_type = ?, tone = ?, body = ?, hashtags = ?, keywords = ?, current_version = ?, updated_at = ?
			WHERE id = ?`,
			item.PersonaID, item.ContentType, item.Tone, item.Body,
			marshalList(item.Hashtags), marshalList(item.Keywords), item.Version, item.UpdatedAt, item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update content item: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO content_versions (content_id, version, body, hashtags, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Version, item.Body, marshalList(item.Hashtags), note, now,
	)
	if err != nil {
		return fmt.Errorf("failed to append content version: %w", err)
	}

	return tx.Commit()
}

// GetByID returns a content item at its latest version
func (r *ContentRepository) GetByID(id string) (*models.ContentItem, error) {
	return r.get("id = ?", id)
}

// GetByCampaignPlatform returns the content item for a (campaign, platform)
// pair, or nil when none exists yet.
func (r *ContentRepository) GetByCampaignPlatform(campaignID, platform string) (*models.ContentItem, error) {
	return r.get("campaign_id = ? AND platform = ?", campaignID, platform)
}

func (r *ContentRepository) get(where string, args ...any) (*models.ContentItem, error) {
	item := &models.ContentItem{}
	var hashtags, keywords string
	err := r.db.QueryRow(`
		SELECT id, campaign_id, persona_id, content_type, platform, tone, body, hashtags, keywords, current_version, created_at, updated_at
		FROM content_items WHERE `+where, args...,
	).Scan(&item.ID, &item.CampaignID, &item.PersonaID, &item.ContentType, &item.Platform, &item.Tone,
		&item.Body, &hashtags, &keywords, &item.Version, &item.CreatedAt, &item.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item.Hashtags = unmarshalList(hashtags)
	item.Keywords = unmarshalList(keywords)
	return item, nil
}

// GetHistory returns all versions of a content item, oldest first.
func (r *ContentRepository) GetHistory(contentID string) ([]models.ContentVersion, error) {
	rows, err := r.db.Query(`
		SELECT id, content_id, version, body, hashtags, note, created_at
		FROM content_versions WHERE content_id = ? ORDER BY version`, contentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := []models.ContentVersion{}
	for rows.Next() {
		var v models.ContentVersion
		var hashtags string
		var note sql.NullString
		if err := rows.Scan(&v.ID, &v.ContentID, &v.Version, &v.Body, &hashtags, &note, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Hashtags = unmarshalList(hashtags)
		v.Note = note.String
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

// ListByCampaign returns all content items belonging to a campaign
func (r *ContentRepository) ListByCampaign(campaignID string) ([]models.ContentItem, error) {
	rows, err := r.db.Query(`
		SELECT id, campaign_id, persona_id, content_type, platform, tone, body, hashtags, keywords, current_version, created_at, updated_at
		FROM content_items WHERE campaign_id = ? ORDER BY created_at`, campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		var item models.ContentItem
		var hashtags, keywords string
		err := rows.Scan(&item.ID, &item.CampaignID, &item.PersonaID, &item.ContentType, &item.Platform, &item.Tone,
			&item.Body, &hashtags, &keywords, &item.Version, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		item.Hashtags = unmarshalList(hashtags)
		item.Keywords = unmarshalList(keywords)
		items = append(items, item)
	}

	return items, rows.Err()
}

func validateContent(item *models.ContentItem) error {
	if item.CampaignID == "" {
		return models.Validationf("campaign_id", "is required")
	}
	if item.PersonaID == "" {
		return models.Validationf("persona_id", "is required")
	}
	if !models.ValidPlatform(item.Platform) {
		return models.Validationf("platform", "unknown platform %q", item.Platform)
	}
	if !models.ValidContentType(item.ContentType) {
		return models.Validationf("content_type", "unknown content type %q", item.ContentType)
	}
	if strings.TrimSpace(item.Body) == "" {
		return models.Validationf("body", "is required")
	}
	return nil
}
