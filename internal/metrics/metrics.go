// Package metrics holds the Prometheus instruments for trace generation and
// playback. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every instrument registered by New.
type Metrics struct {
	TracesGenerated *prometheus.CounterVec
	TracesRejected  *prometheus.CounterVec
	TraceSteps      *prometheus.HistogramVec
	PlaybackIndex   prometheus.Gauge
	PlaybackTicks   prometheus.Counter
	StaleTicks      prometheus.Counter
}

// New registers the instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		TracesGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algotrace_traces_generated_total",
			Help: "Total number of traces generated, labelled by algorithm.",
		}, []string{"algorithm"}),

		TracesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algotrace_traces_rejected_total",
			Help: "Total number of generation requests rejected by input validation.",
		}, []string{"algorithm"}),

		TraceSteps: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algotrace_trace_steps",
			Help:    "Number of steps per generated trace.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 20000},
		}, []string{"algorithm"}),

		PlaybackIndex: f.NewGauge(prometheus.GaugeOpts{
			Name: "algotrace_playback_index",
			Help: "Current step index of the playback controller.",
		}),

		PlaybackTicks: f.NewCounter(prometheus.CounterOpts{
			Name: "algotrace_playback_ticks_total",
			Help: "Total number of autoplay ticks applied.",
		}),

		StaleTicks: f.NewCounter(prometheus.CounterOpts{
			Name: "algotrace_playback_stale_ticks_total",
			Help: "Total number of autoplay ticks dropped because their timer was cancelled.",
		}),
	}
}

// Generated records a successful generation of steps steps.
func (m *Metrics) Generated(algorithm string, steps int) {
	if m == nil {
		return
	}
	m.TracesGenerated.WithLabelValues(algorithm).Inc()
	m.TraceSteps.WithLabelValues(algorithm).Observe(float64(steps))
}

// Rejected records a generation refused by validation.
func (m *Metrics) Rejected(algorithm string) {
	if m == nil {
		return
	}
	m.TracesRejected.WithLabelValues(algorithm).Inc()
}

// Index records the controller position.
func (m *Metrics) Index(i int) {
	if m == nil {
		return
	}
	m.PlaybackIndex.Set(float64(i))
}

// Tick records an applied autoplay tick.
func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.PlaybackTicks.Inc()
}

// Stale records a dropped autoplay tick.
func (m *Metrics) Stale() {
	if m == nil {
		return
	}
	m.StaleTicks.Inc()
}
