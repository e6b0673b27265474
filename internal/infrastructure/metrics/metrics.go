package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AvailabilityMetrics holds the counters exported on /metrics. It satisfies
// the admin application's Recorder port.
type AvailabilityMetrics struct {
	// pause / resume / expire / block / unblock
	TransitionsTotal *prometheus.CounterVec
	// resolver output per availability read
	DecisionsTotal *prometheus.CounterVec
	// expired pauses that could not be written back
	WriteBackFailuresTotal prometheus.Counter

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewAvailabilityMetrics registers the counters on reg.
func NewAvailabilityMetrics(reg prometheus.Registerer) *AvailabilityMetrics {
	factory := promauto.With(reg)
	return &AvailabilityMetrics{
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_state_transitions_total",
				Help: "Pause and block state changes applied to stores",
			},
			[]string{"kind"},
		),

		DecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_availability_decisions_total",
				Help: "Availability reads by resolved result",
			},
			[]string{"result"},
		),

		WriteBackFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "store_pause_writeback_failures_total",
				Help: "Expired pauses whose reset could not be persisted",
			},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "store_cache_hits_total",
				Help: "Store record reads served from the in-process cache",
			},
		),

		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "store_cache_misses_total",
				Help: "Store record reads that went to the repository",
			},
		),
	}
}

// Transition records a pause or block state change.
func (m *AvailabilityMetrics) Transition(kind string) {
	m.TransitionsTotal.WithLabelValues(kind).Inc()
}

// Decision records the result of one availability read.
func (m *AvailabilityMetrics) Decision(open bool) {
	result := "closed"
	if open {
		result = "open"
	}
	m.DecisionsTotal.WithLabelValues(result).Inc()
}

func (m *AvailabilityMetrics) WriteBackFailed() {
	m.WriteBackFailuresTotal.Inc()
}

func (m *AvailabilityMetrics) CacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *AvailabilityMetrics) CacheMiss() {
	m.CacheMissesTotal.Inc()
}
