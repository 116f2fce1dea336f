package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records settlement confirmation outcomes.
type SettlementMetrics struct {
	duration  *prometheus.HistogramVec
	settled   *prometheus.CounterVec
	duplicate *prometheus.CounterVec
	failure   *prometheus.CounterVec
}

// NewSettlementMetrics registers the settlement metrics on the provided registerer.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Duration of settlement confirmations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	settled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_settled_total",
		Help: "Payment orders settled.",
	}, []string{"method"})
	duplicate := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_duplicate_total",
		Help: "Confirmations arriving after the payment order was settled.",
	}, []string{"method"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_failure_total",
		Help: "Failed settlement confirmations.",
	}, []string{"method"})
	reg.MustRegister(duration, settled, duplicate, failure)
	return &SettlementMetrics{
		duration:  duration,
		settled:   settled,
		duplicate: duplicate,
		failure:   failure,
	}
}

// ObserveDuration records the duration for the given payment method.
func (s *SettlementMetrics) ObserveDuration(method string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncSettled increments the settled counter.
func (s *SettlementMetrics) IncSettled(method string) {
	if s == nil || s.settled == nil {
		return
	}
	s.settled.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncDuplicate increments the duplicate-confirmation counter.
func (s *SettlementMetrics) IncDuplicate(method string) {
	if s == nil || s.duplicate == nil {
		return
	}
	s.duplicate.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncFailure increments the failure counter.
func (s *SettlementMetrics) IncFailure(method string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(method)).Inc()
}

func normalizeLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}
