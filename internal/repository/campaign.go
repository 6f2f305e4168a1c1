package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

type CampaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(c *models.Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return models.Validationf("name", "is required")
	}
	if strings.TrimSpace(c.Goal) == "" {
		return models.Validationf("goal", "is required")
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now()

	_, err := r.db.Exec(`
		INSERT INTO campaigns (id, name, goal, created_at)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Goal, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

// GetByID returns a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	c := &models.Campaign{}
	err := r.db.QueryRow(`
		SELECT id, name, goal, created_at FROM campaigns WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Goal, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns campaigns with optional filtering, newest first
func (r *CampaignRepository) List(filter models.CampaignListFilter) ([]models.Campaign, error) {
	query := "SELECT id, name, goal, created_at FROM campaigns WHERE 1=1"
	args := []any{}

	if filter.Search != "" {
		query += " AND (name LIKE ? OR goal LIKE ?)"
		args = append(args, "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Goal, &c.CreatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}
