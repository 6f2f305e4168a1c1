// Package analytics records distribution outcome metrics and aggregates
// them on demand. Records are append-only; summaries are computed from the
// stored set at read time.
package analytics

import (
	"log/slog"

	"github.com/sparclabs/sparc/internal/models"
	"github.com/sparclabs/sparc/internal/repository"
)

type Aggregator struct {
	records *repository.AnalyticsRepository
	logger  *slog.Logger
}

// New creates a new aggregator
func New(records *repository.AnalyticsRepository, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		records: records,
		logger:  logger.With("component", "analytics"),
	}
}

// RecordMetric appends one observed metric value for a publish attempt.
func (a *Aggregator) RecordMetric(scheduleEntryID, metric string, value float64) (*models.AnalyticsRecord, error) {
	if !models.ValidMetric(metric) {
		return nil, models.Validationf("metric", "unknown metric %q", metric)
	}
	if scheduleEntryID == "" {
		return nil, models.Validationf("schedule_entry_id", "is required")
	}

	exists, err := a.records.EntryExists(scheduleEntryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrNotFound
	}

	rec := &models.AnalyticsRecord{
		ScheduleEntryID: scheduleEntryID,
		Metric:          metric,
		Value:           value,
	}
	if err := a.records.Insert(rec); err != nil {
		return nil, err
	}

	a.logger.Debug("metric recorded", "entry_id", scheduleEntryID, "metric", metric, "value", value)
	return rec, nil
}

// Summarize aggregates the filtered record set into per-metric totals and
// averages, plus the derived click-through rate.
func (a *Aggregator) Summarize(filter models.AnalyticsFilter) (*models.AnalyticsSummary, error) {
	metrics, err := a.records.Aggregate(filter)
	if err != nil {
		return nil, err
	}

	summary := &models.AnalyticsSummary{Metrics: metrics}

	impressions := metrics[models.MetricImpressions].Total
	if impressions > 0 {
		summary.ClickThroughRate = metrics[models.MetricClicks].Total / impressions
	}

	return summary, nil
}
