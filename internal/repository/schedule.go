package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sparclabs/sparc/internal/models"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create creates a new schedule entry
func (r *ScheduleRepository) Create(e *models.ScheduleEntry) error {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO schedule_entries (id, content_id, platform, scheduled_at, status, recipients, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ContentID, e.Platform, e.ScheduledAt, e.Status, marshalList(e.Recipients), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return nil
}

// GetByID returns a schedule entry by ID
func (r *ScheduleRepository) GetByID(id string) (*models.ScheduleEntry, error) {
	row := r.db.QueryRow(selectEntry+" WHERE id = ?", id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns schedule entries matching the filter, ordered by scheduled
// time then ID so repeated calls return identical results.
func (r *ScheduleRepository) List(filter models.ScheduleListFilter) ([]models.ScheduleEntry, error) {
	query := selectEntry + " WHERE 1=1"
	args := []any{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Platform != "" {
		query += " AND platform = ?"
		args = append(args, filter.Platform)
	}

	query += " ORDER BY scheduled_at, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	return r.queryEntries(query, args...)
}

// Due returns entries in scheduled status whose time has been reached.
func (r *ScheduleRepository) Due(now time.Time) ([]models.ScheduleEntry, error) {
	return r.queryEntries(
		selectEntry+" WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ? ORDER BY scheduled_at, id",
		models.StatusScheduled, now,
	)
}

// SetScheduled moves an entry into scheduled status with a new publish time
// and clears any previous failure reason.
func (r *ScheduleRepository) SetScheduled(id string, at time.Time) error {
	res, err := r.db.Exec(`
		UPDATE schedule_entries SET status = ?, scheduled_at = ?, failure_reason = '', updated_at = ?
		WHERE id = ?`,
		models.StatusScheduled, at, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to reschedule entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPublished records a successful publish attempt.
func (r *ScheduleRepository) MarkPublished(id, externalRef string, attemptAt time.Time) error {
	res, err := r.db.Exec(`
		UPDATE schedule_entries SET status = ?, external_ref = ?, last_attempt_at = ?, updated_at = ?
		WHERE id = ?`,
		models.StatusPublished, externalRef, attemptAt, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark entry published: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed records a failed publish attempt with its reason.
func (r *ScheduleRepository) MarkFailed(id, reason string, attemptAt time.Time) error {
	res, err := r.db.Exec(`
		UPDATE schedule_entries SET status = ?, failure_reason = ?, last_attempt_at = ?, updated_at = ?
		WHERE id = ?`,
		models.StatusFailed, reason, attemptAt, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark entry failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectEntry = `
	SELECT id, content_id, platform, scheduled_at, status, recipients, last_attempt_at, failure_reason, external_ref, created_at, updated_at
	FROM schedule_entries`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.ScheduleEntry, error) {
	e := &models.ScheduleEntry{}
	var recipients, reason, ref sql.NullString
	err := row.Scan(&e.ID, &e.ContentID, &e.Platform, &e.ScheduledAt, &e.Status,
		&recipients, &e.LastAttemptAt, &reason, &ref, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Recipients = unmarshalList(recipients.String)
	e.FailureReason = reason.String
	e.ExternalRef = ref.String
	return e, nil
}

func (r *ScheduleRepository) queryEntries(query string, args ...any) ([]models.ScheduleEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ScheduleEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}
