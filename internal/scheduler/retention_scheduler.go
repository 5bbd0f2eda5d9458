package scheduler

import (
	"time"

	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RetentionScheduler prunes daily metric rows older than the retention window.
type RetentionScheduler struct {
	cron           *cron.Cron
	metricsService service.MetricsService
	spec           string
	retentionDays  int
	now            func() time.Time
}

func NewRetentionScheduler(metricsService service.MetricsService, spec string, retentionDays int) *RetentionScheduler {
	return &RetentionScheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		metricsService: metricsService,
		spec:           spec,
		retentionDays:  retentionDays,
		now:            time.Now,
	}
}

// RunOnce deletes rows older than retentionDays. A non-positive window keeps everything.
func (s *RetentionScheduler) RunOnce() (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)
	return s.metricsService.PruneBefore(cutoff)
}

func (s *RetentionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled metrics pruning", map[string]interface{}{
			"retention_days": s.retentionDays,
		})

		if _, err := s.RunOnce(); err != nil {
			logger.Error("Failed to prune metrics from scheduler", err)
			return
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for metrics pruning", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Metrics retention scheduler started", map[string]interface{}{
		"spec":           s.spec,
		"retention_days": s.retentionDays,
	})
	return nil
}

func (s *RetentionScheduler) Stop() {
	logger.Info("Stopping metrics retention scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Metrics retention scheduler stopped", nil)
}
