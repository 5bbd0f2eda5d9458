package repository

import (
	"time"

	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetricRepository keeps per-site counters, one row per UTC day plus a
// running total.
type MetricRepository interface {
	Increment(siteID string, at time.Time, delta model.MetricCounters) error
	FindDaily(siteID string, fromDay, toDay string) ([]model.SiteMetricDaily, error)
	FindTotals(siteID string) (*model.SiteMetricTotal, error)
	DeleteBefore(day string) (int64, error)
	DeleteSite(siteID string) error
}

type metricRepository struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

func counterAssignments(table string, delta model.MetricCounters, now time.Time) clause.Set {
	return clause.Assignments(map[string]interface{}{
		"views":       gorm.Expr(table+".views + ?", delta.Views),
		"clicks":      gorm.Expr(table+".clicks + ?", delta.Clicks),
		"conversions": gorm.Expr(table+".conversions + ?", delta.Conversions),
		"sessions":    gorm.Expr(table+".sessions + ?", delta.Sessions),
		"duration_ms": gorm.Expr(table+".duration_ms + ?", delta.DurationMs),
		"updated_at":  now,
	})
}

// Increment adds delta to the day row and the totals row in one transaction.
// Both writes are upserts so concurrent first events for a site do not race.
func (r *metricRepository) Increment(siteID string, at time.Time, delta model.MetricCounters) error {
	at = at.UTC()
	day := at.Format(model.MetricDayLayout)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		daily := model.SiteMetricDaily{SiteID: siteID, Day: day, MetricCounters: delta, UpdatedAt: at}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "site_id"}, {Name: "day"}},
			DoUpdates: counterAssignments(model.SiteMetricDaily{}.TableName(), delta, at),
		}).Create(&daily).Error; err != nil {
			return err
		}

		total := model.SiteMetricTotal{SiteID: siteID, MetricCounters: delta, LastEventAt: &at, UpdatedAt: at}
		set := counterAssignments(model.SiteMetricTotal{}.TableName(), delta, at)
		set = append(set, clause.Assignment{Column: clause.Column{Name: "last_event_at"}, Value: at})
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "site_id"}},
			DoUpdates: set,
		}).Create(&total).Error
	})
	if err != nil {
		logger.Error("Failed to increment site metrics", err, map[string]interface{}{
			"site_id": siteID,
			"day":     day,
		})
		return err
	}
	return nil
}

// FindDaily returns rows with fromDay <= day <= toDay, oldest first. Days use
// model.MetricDayLayout so lexical order is calendar order.
func (r *metricRepository) FindDaily(siteID string, fromDay, toDay string) ([]model.SiteMetricDaily, error) {
	var rows []model.SiteMetricDaily
	err := r.db.
		Where("site_id = ? AND day >= ? AND day <= ?", siteID, fromDay, toDay).
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to load daily metrics", err, map[string]interface{}{
			"site_id": siteID,
		})
		return nil, err
	}
	return rows, nil
}

func (r *metricRepository) FindTotals(siteID string) (*model.SiteMetricTotal, error) {
	var total model.SiteMetricTotal
	if err := r.db.First(&total, "site_id = ?", siteID).Error; err != nil {
		return nil, err
	}
	return &total, nil
}

// DeleteBefore removes daily rows older than day. Totals are kept.
func (r *metricRepository) DeleteBefore(day string) (int64, error) {
	result := r.db.Where("day < ?", day).Delete(&model.SiteMetricDaily{})
	if result.Error != nil {
		logger.Error("Failed to prune daily metrics", result.Error, map[string]interface{}{
			"before": day,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *metricRepository) DeleteSite(siteID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", siteID).Delete(&model.SiteMetricDaily{}).Error; err != nil {
			return err
		}
		return tx.Where("site_id = ?", siteID).Delete(&model.SiteMetricTotal{}).Error
	})
}
