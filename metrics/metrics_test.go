package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/subexpiry/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObservePass("recurring", 20*time.Millisecond, nil)
	m.ObservePass("on_demand", time.Millisecond, errors.New("scan failed"))
	m.ObserveDecision("due_now")
	m.ObserveDecision("due_now")
	m.ObserveApply("applied")
	m.ObserveRecordUpdate("error")
	m.SetPendingTimers(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues("recurring", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues("on_demand", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("due_now")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppliesTotal.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordUpdateTotal.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingTimers))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObservePass("recurring", time.Second, nil)
		m.ObserveDecision("due_later")
		m.ObserveApply("skipped")
		m.ObserveRecordUpdate("updated")
		m.SetPendingTimers(1)
	})
}
