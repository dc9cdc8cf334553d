package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts outbound weather provider calls.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		providerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_provider_requests_total",
			Help: "Outbound weather provider requests by outcome.",
		}, []string{"provider", "outcome"}),
		providerLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weather_provider_request_duration_seconds",
			Help:    "Outbound weather provider request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}

func (m *Metrics) ObserveProviderRequest(providerName, outcome string, elapsed time.Duration) {
	m.providerRequests.WithLabelValues(providerName, outcome).Inc()
	m.providerLatency.WithLabelValues(providerName).Observe(elapsed.Seconds())
}
