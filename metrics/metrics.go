// Package metrics exposes prometheus instrumentation for reconciliation passes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the reconciler's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	PassesTotal       *prometheus.CounterVec
	PassDuration      *prometheus.HistogramVec
	DecisionsTotal    *prometheus.CounterVec
	AppliesTotal      *prometheus.CounterVec
	RecordUpdateTotal *prometheus.CounterVec
	PendingTimers     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PassesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "subexpiry",
				Subsystem: "pass",
				Name:      "total",
				Help:      "Reconciliation passes by trigger and outcome",
			},
			[]string{"trigger", "status"},
		),
		PassDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "subexpiry",
				Subsystem: "pass",
				Name:      "duration_seconds",
				Help:      "Reconciliation pass duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "subexpiry",
				Subsystem: "evaluator",
				Name:      "decisions_total",
				Help:      "Evaluator decisions by kind",
			},
			[]string{"kind"},
		),
		AppliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "subexpiry",
				Subsystem: "applier",
				Name:      "applies_total",
				Help:      "Applier invocations by outcome (applied, skipped, cache_error)",
			},
			[]string{"outcome"},
		),
		RecordUpdateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "subexpiry",
				Subsystem: "applier",
				Name:      "record_updates_total",
				Help:      "Relational mirror updates by status",
			},
			[]string{"status"},
		),
		PendingTimers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "subexpiry",
				Subsystem: "scheduler",
				Name:      "pending_timers",
				Help:      "Deferred expirations waiting to fire",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.PassesTotal,
			m.PassDuration,
			m.DecisionsTotal,
			m.AppliesTotal,
			m.RecordUpdateTotal,
			m.PendingTimers,
		)
	}
	return m
}

func (m *Metrics) ObservePass(trigger string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PassesTotal.WithLabelValues(trigger, status).Inc()
	m.PassDuration.WithLabelValues(trigger).Observe(d.Seconds())
}

func (m *Metrics) ObserveDecision(kind string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveApply(outcome string) {
	if m == nil {
		return
	}
	m.AppliesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRecordUpdate(status string) {
	if m == nil {
		return
	}
	m.RecordUpdateTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) SetPendingTimers(n int) {
	if m == nil {
		return
	}
	m.PendingTimers.Set(float64(n))
}
