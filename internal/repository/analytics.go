package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Insert appends an analytics record. Records are never updated or deleted.
func (r *AnalyticsRepository) Insert(rec *models.AnalyticsRecord) error {
	rec.ID = uuid.New().String()
	if rec.ObservedAt.IsZero() {
		rec.ObservedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO analytics_records (id, schedule_entry_id, metric, value, observed_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.ScheduleEntryID, rec.Metric, rec.Value, rec.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analytics record: %w", err)
	}
	return nil
}

// ListByEntry returns all records for a schedule entry, oldest first.
func (r *AnalyticsRepository) ListByEntry(entryID string) ([]models.AnalyticsRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, schedule_entry_id, metric, value, observed_at
		FROM analytics_records WHERE schedule_entry_id = ? ORDER BY observed_at, id`, entryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.AnalyticsRecord{}
	for rows.Next() {
		var rec models.AnalyticsRecord
		if err := rows.Scan(&rec.ID, &rec.ScheduleEntryID, &rec.Metric, &rec.Value, &rec.ObservedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Aggregate computes per-metric totals, counts and averages over the
// filtered record set. Aggregation happens on read; stored records are
// never mutated.
func (r *AnalyticsRepository) Aggregate(filter models.AnalyticsFilter) (map[string]models.MetricSummary, error) {
	query := `
		SELECT ar.metric, SUM(ar.value), COUNT(*), AVG(ar.value)
		FROM analytics_records ar
		JOIN schedule_entries se ON ar.schedule_entry_id = se.id
		WHERE 1=1`
	args := []any{}

	if filter.Platform != "" {
		query += " AND se.platform = ?"
		args = append(args, filter.Platform)
	}
	if filter.From != nil {
		query += " AND ar.observed_at >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND ar.observed_at <= ?"
		args = append(args, *filter.To)
	}

	query += " GROUP BY ar.metric"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := map[string]models.MetricSummary{}
	for rows.Next() {
		var s models.MetricSummary
		if err := rows.Scan(&s.Metric, &s.Total, &s.Count, &s.Average); err != nil {
			return nil, err
		}
		summaries[s.Metric] = s
	}

	return summaries, rows.Err()
}

// EntryExists reports whether a schedule entry is present.
func (r *AnalyticsRepository) EntryExists(entryID string) (bool, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM schedule_entries WHERE id = ?", entryID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
