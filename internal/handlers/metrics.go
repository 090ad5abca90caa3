package handlers

import (
	"github.com/prometheus/client_golang/prometheus"

	"intercom/pkg/monitoring"
)

const (
	notifyStatusSuccess = "success"
	notifyStatusError   = "error"
)

type IntercomMetrics struct {
	PingCount     *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// NewIntercomMetrics registers the intercom counters on mc. The ping counter
// carries a single placeholder label that is always empty.
func NewIntercomMetrics(mc *monitoring.MetricsCollector) *IntercomMetrics {
	return &IntercomMetrics{
		PingCount:     mc.NewCounter("ping_count", "count of valid requests to /ping", []string{"dummy_label"}),
		Notifications: mc.NewCounter("notifications_total", "Notification forwarding attempts by outcome", []string{"status"}),
	}
}

func (m *IntercomMetrics) IncPing() {
	if m == nil || m.PingCount == nil {
		return
	}

	m.PingCount.WithLabelValues("").Inc()
}

func (m *IntercomMetrics) IncNotification(status string) {
	if m == nil || m.Notifications == nil {
		return
	}

	m.Notifications.WithLabelValues(status).Inc()
}
