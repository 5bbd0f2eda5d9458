package model

import "time"

type MetricEventType string

const (
	EventPageView   MetricEventType = "page_view"
	EventClick      MetricEventType = "click"
	EventConversion MetricEventType = "conversion"
	EventSessionEnd MetricEventType = "session_end"
)

// Valid reports whether t is one of the four ingestible event types.
func (t MetricEventType) Valid() bool {
	switch t {
	case EventPageView, EventClick, EventConversion, EventSessionEnd:
		return true
	}
	return false
}

// MetricDayLayout formats SiteMetricDaily.Day (UTC calendar day).
const MetricDayLayout = "2006-01-02"

// MetricCounters are the per-site counters kept daily and in total.
type MetricCounters struct {
	Views       int64 `gorm:"not null;default:0" json:"views"`
	Clicks      int64 `gorm:"not null;default:0" json:"clicks"`
	Conversions int64 `gorm:"not null;default:0" json:"conversions"`
	Sessions    int64 `gorm:"not null;default:0" json:"sessions"`
	DurationMs  int64 `gorm:"not null;default:0" json:"durationMs"`
}

// AvgSessionMs is the mean session length, zero without sessions.
func (c MetricCounters) AvgSessionMs() int64 {
	if c.Sessions == 0 {
		return 0
	}
	return c.DurationMs / c.Sessions
}

type SiteMetricDaily struct {
	ID             uint   `gorm:"primarykey" json:"-"`
	SiteID         string `gorm:"type:varchar(36);not null;uniqueIndex:idx_site_metrics_daily_site_day" json:"siteId"`
	Day            string `gorm:"type:varchar(10);not null;uniqueIndex:idx_site_metrics_daily_site_day;index" json:"day"`
	MetricCounters `gorm:"embedded"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (SiteMetricDaily) TableName() string {
	return "site_metrics_daily"
}

type SiteMetricTotal struct {
	SiteID         string `gorm:"type:varchar(36);primaryKey" json:"siteId"`
	MetricCounters `gorm:"embedded"`
	LastEventAt    *time.Time `json:"lastEventAt,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (SiteMetricTotal) TableName() string {
	return "site_metrics_total"
}
