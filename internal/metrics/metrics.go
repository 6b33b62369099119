// Package metrics exposes load-cycle metrics.
//
// Collectors are registered on a caller-supplied registerer so that each
// loader owns its own set.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	LoadCyclesTotal       prometheus.Counter
	ResolutionDuration    prometheus.Histogram
	ResolutionErrorsTotal *prometheus.CounterVec
	ModsActivated         prometheus.Gauge
	ModsPruned            prometheus.Gauge
	PhaseDuration         *prometheus.HistogramVec
	LifecycleErrorsTotal  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoadCyclesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "modloader_load_cycles_total",
				Help: "Number of load cycles started.",
			},
		),
		ResolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "modloader_resolution_duration_seconds",
				Help:    "Time taken to order mods.",
				Buckets: prometheus.DefBuckets,
			},
		),
		ResolutionErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modloader_resolution_errors_total",
				Help: "Number of failed resolutions by reason.",
			},
			[]string{"reason"},
		),
		ModsActivated: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "modloader_mods_activated",
				Help: "Number of mods in the last resolved order.",
			},
		),
		ModsPruned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "modloader_mods_pruned",
				Help: "Number of on-demand mods dropped in the last resolution.",
			},
		),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modloader_phase_duration_seconds",
				Help:    "Time spent in a single lifecycle step, by phase.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		LifecycleErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modloader_lifecycle_errors_total",
				Help: "Number of load cycles aborted by a lifecycle failure, by phase.",
			},
			[]string{"phase"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.LoadCyclesTotal,
			m.ResolutionDuration,
			m.ResolutionErrorsTotal,
			m.ModsActivated,
			m.ModsPruned,
			m.PhaseDuration,
			m.LifecycleErrorsTotal,
		)
	}
	return m
}

// ObserveResolution records one resolution attempt. reason is empty on
// success.
func (m *Metrics) ObserveResolution(d time.Duration, activated, pruned int, reason string) {
	if m == nil {
		return
	}
	m.ResolutionDuration.Observe(d.Seconds())
	if reason != "" {
		m.ResolutionErrorsTotal.WithLabelValues(reason).Inc()
		return
	}
	m.ModsActivated.Set(float64(activated))
	m.ModsPruned.Set(float64(pruned))
}

// ObservePhase records the duration of one lifecycle step.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// LifecycleFailed counts an aborted cycle.
func (m *Metrics) LifecycleFailed(phase string) {
	if m == nil {
		return
	}
	m.LifecycleErrorsTotal.WithLabelValues(phase).Inc()
}

// CycleStarted counts a new load cycle.
func (m *Metrics) CycleStarted() {
	if m == nil {
		return
	}
	m.LoadCyclesTotal.Inc()
}
