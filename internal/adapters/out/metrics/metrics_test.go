package metrics_test

import (
	"testing"

	"orderflow/internal/adapters/out/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordOutcome(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordOutcome("transitioned")
	m.RecordOutcome("transitioned")
	m.RecordOutcome("failed")

	assert.InDelta(t, 2, testutil.ToFloat64(m.AutomationOutcome.WithLabelValues("transitioned")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AutomationOutcome.WithLabelValues("failed")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.AutomationOutcome.WithLabelValues("no_change")), 0)
}

func TestMetrics_RecordNotificationAndRelay(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordNotification(true)
	m.RecordNotification(false)
	m.RecordRelayed(true)

	assert.InDelta(t, 1, testutil.ToFloat64(m.NotificationResult.WithLabelValues("delivered")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.NotificationResult.WithLabelValues("failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RelayedChanges.WithLabelValues("acknowledged")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RelayedChanges))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordOutcome("failed")
		m.RecordNotification(true)
		m.RecordRelayed(false)
	})
}
