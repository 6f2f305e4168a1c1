// Package scheduler tracks the publish lifecycle of scheduled content.
// Entries move draft -> scheduled -> published|failed; published and failed
// are terminal, and failed leaves failed only through an explicit retry.
//
// There is no background scheduling primitive: the surrounding caller (the
// HTTP API or the publish CLI command) invokes RunDue for each pass.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparclabs/sparc/internal/models"
	"github.com/sparclabs/sparc/internal/publish"
	"github.com/sparclabs/sparc/internal/repository"
)

// ErrInvalidTransition is returned when an operation would move an entry
// against the state machine.
var ErrInvalidTransition = errors.New("invalid status transition")

type Scheduler struct {
	entries   *repository.ScheduleRepository
	content   *repository.ContentRepository
	campaigns *repository.CampaignRepository
	adapters  *publish.Registry
	logger    *slog.Logger

	// now is swappable for tests
	now func() time.Time
}

// New creates a new scheduler
func New(entries *repository.ScheduleRepository, content *repository.ContentRepository, campaigns *repository.CampaignRepository, adapters *publish.Registry, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		entries:   entries,
		content:   content,
		campaigns: campaigns,
		adapters:  adapters,
		logger:    logger.With("component", "scheduler"),
		now:       time.Now,
	}
}

// Draft creates an entry in draft status with no publish time yet.
func (s *Scheduler) Draft(contentID, platform string, recipients []string) (*models.ScheduleEntry, error) {
	if err := s.checkTarget(contentID, platform); err != nil {
		return nil, err
	}

	entry := &models.ScheduleEntry{
		ContentID:  contentID,
		Platform:   platform,
		Status:     models.StatusDraft,
		Recipients: recipients,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Schedule creates an entry already in scheduled status for a future
// publish time.
func (s *Scheduler) Schedule(contentID, platform string, at time.Time, recipients []string) (*models.ScheduleEntry, error) {
	if err := s.checkTarget(contentID, platform); err != nil {
		return nil, err
	}
	if !at.After(s.now()) {
		return nil, models.Validationf("scheduled_at", "must be in the future")
	}

	entry := &models.ScheduleEntry{
		ContentID:   contentID,
		Platform:    platform,
		ScheduledAt: &at,
		Status:      models.StatusScheduled,
		Recipients:  recipients,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}

	s.logger.Info("entry scheduled", "entry_id", entry.ID, "platform", platform, "scheduled_at", at)
	return entry, nil
}

// SetTime moves a draft entry into scheduled status. A scheduled entry may
// be moved to a new time; terminal entries may not.
func (s *Scheduler) SetTime(entryID string, at time.Time) (*models.ScheduleEntry, error) {
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, repository.ErrNotFound
	}
	if entry.Status != models.StatusDraft && entry.Status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, models.StatusScheduled)
	}
	if !at.After(s.now()) {
		return nil, models.Validationf("scheduled_at", "must be in the future")
	}

	if err := s.entries.SetScheduled(entryID, at); err != nil {
		return nil, err
	}
	return s.entries.GetByID(entryID)
}

// Retry moves a failed entry back to scheduled for a new attempt. Retrying
// is always explicit; nothing in this package retries on its own.
func (s *Scheduler) Retry(entryID string, at time.Time) (*models.ScheduleEntry, error) {
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, repository.ErrNotFound
	}
	if entry.Status != models.StatusFailed {
		return nil, fmt.Errorf("%w: only failed entries can be retried, got %s", ErrInvalidTransition, entry.Status)
	}
	if !at.After(s.now()) {
		return nil, models.Validationf("scheduled_at", "must be in the future")
	}

	if err := s.entries.SetScheduled(entryID, at); err != nil {
		return nil, err
	}

	s.logger.Info("entry rescheduled after failure", "entry_id", entryID, "scheduled_at", at)
	return s.entries.GetByID(entryID)
}

// Get returns one schedule entry.
func (s *Scheduler) Get(entryID string) (*models.ScheduleEntry, error) {
	entry, err := s.entries.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, repository.ErrNotFound
	}
	return entry, nil
}

// CheckDue returns the entries whose scheduled time has been reached, one
// finite pass per invocation. Terminal and future entries never appear.
func (s *Scheduler) CheckDue() ([]models.ScheduleEntry, error) {
	return s.entries.Due(s.now())
}

// AttemptPublish delivers one scheduled entry through its platform adapter
// and moves it to published or failed. The failure reason is recorded on
// the entry, never swallowed.
func (s *Scheduler) AttemptPublish(ctx context.Context, entry *models.ScheduleEntry) (*models.ScheduleEntry, error) {
	if entry.Status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: cannot publish entry in %s status", ErrInvalidTransition, entry.Status)
	}

	attemptAt := s.now()

	adapter, err := s.adapters.Get(entry.Platform)
	if err != nil {
		return s.fail(entry, err.Error(), attemptAt)
	}

	item, err := s.content.GetByID(entry.ContentID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return s.fail(entry, "content not found", attemptAt)
	}

	delivery := &publish.Delivery{
		Text:       item.Body,
		Hashtags:   item.Hashtags,
		Subject:    s.subjectFor(item),
		Recipients: entry.Recipients,
	}

	ref, err := adapter.Deliver(ctx, delivery)
	if err != nil {
		var de *publish.DeliveryError
		if errors.As(err, &de) {
			return s.fail(entry, de.Message, attemptAt)
		}
		return s.fail(entry, err.Error(), attemptAt)
	}

	if err := s.entries.MarkPublished(entry.ID, ref, attemptAt); err != nil {
		return nil, err
	}

	s.logger.Info("entry published", "entry_id", entry.ID, "platform", entry.Platform, "external_ref", ref)
	return s.entries.GetByID(entry.ID)
}

// RunDue performs one publish pass: check due entries, then attempt each in
// order. Entries are processed one at a time; no entry is touched by two
// attempts in the same pass. The updated entries are returned for display.
func (s *Scheduler) RunDue(ctx context.Context) ([]models.ScheduleEntry, error) {
	due, err := s.CheckDue()
	if err != nil {
		return nil, err
	}

	results := make([]models.ScheduleEntry, 0, len(due))
	published := 0
	for i := range due {
		updated, err := s.AttemptPublish(ctx, &due[i])
		if err != nil {
			return results, err
		}
		if updated.Status == models.StatusPublished {
			published++
		}
		results = append(results, *updated)
	}

	if len(due) > 0 {
		s.logger.Info("publish pass complete", "due", len(due), "published", published, "failed", len(due)-published)
	}
	return results, nil
}

// ListByStatus returns entries for dashboard display, in a stable order.
func (s *Scheduler) ListByStatus(status string) ([]models.ScheduleEntry, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, models.Validationf("status", "unknown status %q", status)
	}
	return s.entries.List(models.ScheduleListFilter{Status: status})
}

func (s *Scheduler) checkTarget(contentID, platform string) error {
	if !models.ValidPlatform(platform) {
		return models.Validationf("platform", "unknown platform %q", platform)
	}
	item, err := s.content.GetByID(contentID)
	if err != nil {
		return err
	}
	if item == nil {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Scheduler) fail(entry *models.ScheduleEntry, reason string, attemptAt time.Time) (*models.ScheduleEntry, error) {
	if reason == "" {
		reason = "delivery failed"
	}
	if err := s.entries.MarkFailed(entry.ID, reason, attemptAt); err != nil {
		return nil, err
	}

	s.logger.Warn("publish attempt failed", "entry_id", entry.ID, "platform", entry.Platform, "reason", reason)
	return s.entries.GetByID(entry.ID)
}

func (s *Scheduler) subjectFor(item *models.ContentItem) string {
	campaign, err := s.campaigns.GetByID(item.CampaignID)
	if err != nil || campaign == nil {
		return ""
	}
	return campaign.Name
}
