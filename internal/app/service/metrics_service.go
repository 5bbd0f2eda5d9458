package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	MaxLabelLength       = 120
	MaxSessionDurationMs = 1_800_000

	DefaultSummaryDays = 30
	MaxSummaryDays     = 365
)

var ErrInvalidMetricEvent = errors.New("invalid metric event")

// MetricEvent is one beacon from an instrumented page.
type MetricEvent struct {
	SiteID     string
	Type       model.MetricEventType
	Label      string
	DurationMs float64
}

// MetricBroadcaster pushes recorded events to live dashboards.
type MetricBroadcaster interface {
	BroadcastMetric(siteID string, payload interface{})
}

// LiveMetric is the payload sent to dashboard clients.
type LiveMetric struct {
	Type       string                `json:"type"`
	Event      model.MetricEventType `json:"event"`
	Label      string                `json:"label,omitempty"`
	DurationMs int64                 `json:"durationMs,omitempty"`
	At         time.Time             `json:"at"`
}

// MetricsSummary is a dense daily series plus all-time totals.
type MetricsSummary struct {
	SiteID       string                  `json:"siteId"`
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	Days         []model.SiteMetricDaily `json:"days"`
	Totals       model.MetricCounters    `json:"totals"`
	AvgSessionMs int64                   `json:"avgSessionMs"`
	LastEventAt  *time.Time              `json:"lastEventAt,omitempty"`
}

type MetricsService interface {
	Record(ctx context.Context, event MetricEvent) error
	Summary(siteID string, days int) (*MetricsSummary, error)
	Export(siteID string, days int) ([]byte, error)
	PruneBefore(cutoff time.Time) (int64, error)
}

type metricsService struct {
	siteRepo    repository.SiteRepository
	metricRepo  repository.MetricRepository
	broadcaster MetricBroadcaster
	now         func() time.Time
}

// NewMetricsService wires the metrics service. broadcaster may be nil.
func NewMetricsService(siteRepo repository.SiteRepository, metricRepo repository.MetricRepository, broadcaster MetricBroadcaster) MetricsService {
	return &metricsService{
		siteRepo:    siteRepo,
		metricRepo:  metricRepo,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// NormalizeLabel trims, collapses runs of whitespace and truncates to
// MaxLabelLength runes.
func NormalizeLabel(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	if r := []rune(label); len(r) > MaxLabelLength {
		label = string(r[:MaxLabelLength])
	}
	return label
}

// ClampDuration rounds to whole milliseconds within [0, MaxSessionDurationMs].
func ClampDuration(ms float64) int64 {
	if math.IsNaN(ms) || ms <= 0 {
		return 0
	}
	if ms >= MaxSessionDurationMs {
		return MaxSessionDurationMs
	}
	return int64(math.Round(ms))
}

// countersFor maps an event onto the counters it increments.
func countersFor(t model.MetricEventType, durationMs int64) model.MetricCounters {
	switch t {
	case model.EventPageView:
		return model.MetricCounters{Views: 1}
	case model.EventClick:
		return model.MetricCounters{Clicks: 1}
	case model.EventConversion:
		return model.MetricCounters{Conversions: 1}
	case model.EventSessionEnd:
		return model.MetricCounters{Sessions: 1, DurationMs: durationMs}
	}
	return model.MetricCounters{}
}

func (s *metricsService) Record(ctx context.Context, event MetricEvent) error {
	siteID := strings.TrimSpace(event.SiteID)
	if siteID == "" || !event.Type.Valid() {
		return ErrInvalidMetricEvent
	}

	exists, err := s.siteRepo.Exists(siteID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSiteNotFound
	}

	label := NormalizeLabel(event.Label)
	var duration int64
	if event.Type == model.EventSessionEnd {
		duration = ClampDuration(event.DurationMs)
	}

	at := s.now().UTC()
	if err := s.metricRepo.Increment(siteID, at, countersFor(event.Type, duration)); err != nil {
		return err
	}

	logger.Debug("Metric event recorded", map[string]interface{}{
		"site_id": siteID,
		"type":    string(event.Type),
		"label":   label,
	})

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMetric(siteID, LiveMetric{
			Type:       "metric",
			Event:      event.Type,
			Label:      label,
			DurationMs: duration,
			At:         at,
		})
	}
	return nil
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		return MaxSummaryDays
	}
	return days
}

// Summary returns the last days UTC days ending today, with zero rows for
// days without events.
func (s *metricsService) Summary(siteID string, days int) (*MetricsSummary, error) {
	exists, err := s.siteRepo.Exists(siteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSiteNotFound
	}

	days = clampDays(days)
	today := s.now().UTC()
	from := today.AddDate(0, 0, -(days - 1)).Format(model.MetricDayLayout)
	to := today.Format(model.MetricDayLayout)

	rows, err := s.metricRepo.FindDaily(siteID, from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]model.SiteMetricDaily, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}

	summary := &MetricsSummary{
		SiteID: siteID,
		From:   from,
		To:     to,
		Days:   make([]model.SiteMetricDaily, 0, days),
	}
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(model.MetricDayLayout)
		row, ok := byDay[day]
		if !ok {
			row = model.SiteMetricDaily{SiteID: siteID, Day: day}
		}
		summary.Days = append(summary.Days, row)
	}

	total, err := s.metricRepo.FindTotals(siteID)
	switch {
	case err == nil:
		summary.Totals = total.MetricCounters
		summary.LastEventAt = total.LastEventAt
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}
	summary.AvgSessionMs = summary.Totals.AvgSessionMs()
	return summary, nil
}

var exportHeader = []interface{}{"Día", "Visitas", "Clics", "Conversiones", "Sesiones", "Sesión media (s)"}

// Export renders Summary as an xlsx workbook.
func (s *metricsService) Export(siteID string, days int) ([]byte, error) {
	summary, err := s.Summary(siteID, days)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Métricas"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	row := 2
	for _, d := range summary.Days {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{d.Day, d.Views, d.Clicks, d.Conversions, d.Sessions, float64(d.AvgSessionMs()) / 1000}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	cell, _ := excelize.CoordinatesToCellName(1, row+1)
	totals := []interface{}{"Total", summary.Totals.Views, summary.Totals.Clicks, summary.Totals.Conversions, summary.Totals.Sessions, float64(summary.AvgSessionMs) / 1000}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write metrics workbook", err, map[string]interface{}{
			"site_id": siteID,
		})
		return nil, err
	}
	return buf.Bytes(), nil
}

// PruneBefore deletes daily rows older than cutoff's UTC day.
func (s *metricsService) PruneBefore(cutoff time.Time) (int64, error) {
	day := cutoff.UTC().Format(model.MetricDayLayout)
	deleted, err := s.metricRepo.DeleteBefore(day)
	if err != nil {
		return 0, err
	}
	logger.Info("Pruned daily metrics", map[string]interface{}{
		"before":  day,
		"deleted": deleted,
	})
	return deleted, nil
}
