package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payhook",
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "Webhook deliveries by event kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WebhookProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payhook",
			Subsystem: "webhook",
			Name:      "processing_duration_seconds",
			Help:      "Time spent dispatching a verified webhook event",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(WebhookDeliveries, WebhookProcessingDuration)
}

// ObserveWebhook records one processed delivery. kind is "unknown" when the
// payload could not be parsed.
func ObserveWebhook(kind, outcome string, started time.Time) {
	if kind == "" {
		kind = "unknown"
	}
	WebhookDeliveries.WithLabelValues(kind, outcome).Inc()
	WebhookProcessingDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
