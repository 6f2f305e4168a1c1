package models

import "time"

// Metric names recorded against publish attempts.
const (
	MetricImpressions = "impressions"
	MetricClicks      = "clicks"
	MetricConversions = "conversions"
	MetricROI         = "roi"
)

// ValidMetric reports whether name is a recognized metric.
func ValidMetric(name string) bool {
	switch name {
	case MetricImpressions, MetricClicks, MetricConversions, MetricROI:
		return true
	}
	return false
}

// AnalyticsRecord is a single observed metric value tied to a publish
// attempt. Records are append-only and aggregated on read.
type AnalyticsRecord struct {
	ID              string    `json:"id"`
	ScheduleEntryID string    `json:"schedule_entry_id"`
	Metric          string    `json:"metric"`
	Value           float64   `json:"value"`
	ObservedAt      time.Time `json:"observed_at"`
}

// MetricSummary holds aggregates for one metric over a filtered window.
type MetricSummary struct {
	Metric  string  `json:"metric"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// AnalyticsSummary is the aggregated view returned by summarize.
type AnalyticsSummary struct {
	Metrics          map[string]MetricSummary `json:"metrics"`
	ClickThroughRate float64                  `json:"click_through_rate"`
}

// AnalyticsFilter narrows summarize to a platform and/or time range.
type AnalyticsFilter struct {
	Platform string
	From     *time.Time
	To       *time.Time
}
