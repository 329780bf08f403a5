package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/algotrace/internal/metrics"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Generated("kruskal", 12)
	m.Generated("kruskal", 30)
	m.Rejected("n-queens")
	m.Index(7)
	m.Tick()
	m.Stale()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TracesGenerated.WithLabelValues("kruskal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TracesRejected.WithLabelValues("n-queens")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.PlaybackIndex))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlaybackTicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaleTicks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TraceSteps))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Generated("x", 1)
		m.Rejected("x")
		m.Index(1)
		m.Tick()
		m.Stale()
	})
}
