// Package metrics exposes order automation counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the order status automation.
type Metrics struct {
	// Automation runs by outcome: no_change, transitioned, failed
	AutomationOutcome *prometheus.CounterVec

	// Notification attempts by result: delivered, failed
	NotificationResult *prometheus.CounterVec

	// Relayed change feed entries by result: acknowledged, failed
	RelayedChanges *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg.
// Pass prometheus.DefaultRegisterer to serve them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AutomationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orderflow_automation_outcomes_total",
			Help: "Total order status automation runs by outcome",
		}, []string{"outcome"}),

		NotificationResult: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orderflow_automation_notifications_total",
			Help: "Total order status notifications by result",
		}, []string{"result"}),

		RelayedChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orderflow_change_relay_changes_total",
			Help: "Total order changes handed to the automation by result",
		}, []string{"result"}),
	}
}

// RecordOutcome counts one automation run.
func (m *Metrics) RecordOutcome(outcome string) {
	if m != nil {
		m.AutomationOutcome.WithLabelValues(outcome).Inc()
	}
}

// RecordNotification counts one notification attempt.
func (m *Metrics) RecordNotification(delivered bool) {
	if m != nil {
		m.NotificationResult.WithLabelValues(result(delivered, "delivered")).Inc()
	}
}

// RecordRelayed counts one change handed over by the relay job.
func (m *Metrics) RecordRelayed(acknowledged bool) {
	if m != nil {
		m.RelayedChanges.WithLabelValues(result(acknowledged, "acknowledged")).Inc()
	}
}

func result(ok bool, success string) string {
	if ok {
		return success
	}
	return "failed"
}
