package scheduler

import (
	"testing"
	"time"

	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMetrics struct {
	service.MetricsService
	cutoffs []time.Time
}

func (s *stubMetrics) PruneBefore(cutoff time.Time) (int64, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return 3, nil
}

func TestRetentionScheduler_RunOnce(t *testing.T) {
	metrics := &stubMetrics{}
	s := NewRetentionScheduler(metrics, "0 4 * * *", 180)
	s.now = func() time.Time { return time.Date(2026, 7, 1, 4, 0, 0, 0, time.UTC) }

	deleted, err := s.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.Len(t, metrics.cutoffs, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC), metrics.cutoffs[0])
}

func TestRetentionScheduler_DisabledWindow(t *testing.T) {
	metrics := &stubMetrics{}
	s := NewRetentionScheduler(metrics, "0 4 * * *", 0)

	deleted, err := s.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Empty(t, metrics.cutoffs)
}

func TestRetentionScheduler_InvalidSpec(t *testing.T) {
	s := NewRetentionScheduler(&stubMetrics{}, "not a cron spec", 30)
	assert.Error(t, s.Start())
}
