package sigbatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "chainsig"
	metricsSubsystem = "batch"

	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics holds the Prometheus collectors updated by a Verifier.
type Metrics struct {
	// Verifications counts checked requests by scheme and outcome
	// (valid, invalid or error).
	Verifications *prometheus.CounterVec
	// Duration observes the time taken by one verification.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the batch collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "verifications_total",
			Help:      "Number of signatures verified, by scheme and outcome.",
		}, []string{"scheme", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "verification_duration_seconds",
			Help:      "Time taken to verify one signature.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"scheme"}),
	}
	for _, c := range []prometheus.Collector{m.Verifications, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(scheme, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(scheme, outcome).Inc()
	m.Duration.WithLabelValues(scheme).Observe(took.Seconds())
}
