// SPDX-License-Identifier: MIT
// Package: bedrock/pool
//
// metrics.go - Prometheus instrumentation for worker pools.

package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by every pool instrumented
// with it. Series are labelled by pool name. A nil *Metrics records nothing.
type Metrics struct {
	submitted *prometheus.CounterVec
	completed *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	panicked  *prometheus.CounterVec
	depth     *prometheus.GaugeVec
	busy      *prometheus.GaugeVec
}

// NewMetrics creates the pool collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := []string{"pool"}
	return &Metrics{
		submitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bedrock_pool_tasks_submitted_total",
			Help: "Tasks accepted by the pool queue.",
		}, labels),
		completed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bedrock_pool_tasks_completed_total",
			Help: "Tasks that ran to completion, including recovered panics.",
		}, labels),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bedrock_pool_tasks_dropped_total",
			Help: "Tasks rejected or discarded because the pool was shut down.",
		}, labels),
		panicked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bedrock_pool_tasks_panicked_total",
			Help: "Tasks whose panic was recovered by a worker.",
		}, labels),
		depth: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bedrock_pool_queue_depth",
			Help: "Tasks waiting in the pool queue.",
		}, labels),
		busy: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bedrock_pool_busy_workers",
			Help: "Workers currently executing a task.",
		}, labels),
	}
}

// poolMetrics binds Metrics to one pool's label value.
type poolMetrics struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	dropped   prometheus.Counter
	panicked  prometheus.Counter
	depth     prometheus.Gauge
	busy      prometheus.Gauge
}

func (m *Metrics) forPool(name string) *poolMetrics {
	if m == nil {
		return nil
	}
	return &poolMetrics{
		submitted: m.submitted.WithLabelValues(name),
		completed: m.completed.WithLabelValues(name),
		dropped:   m.dropped.WithLabelValues(name),
		panicked:  m.panicked.WithLabelValues(name),
		depth:     m.depth.WithLabelValues(name),
		busy:      m.busy.WithLabelValues(name),
	}
}

// The depth gauge moves by +1 per accepted task and -1 per started or
// discarded one, so it never needs the queue lock. A pop racing a push may
// briefly leave it one below the true length.
func (pm *poolMetrics) onSubmit() {
	if pm == nil {
		return
	}
	pm.submitted.Inc()
	pm.depth.Inc()
}

func (pm *poolMetrics) onDrop() {
	if pm == nil {
		return
	}
	pm.dropped.Inc()
}

func (pm *poolMetrics) onDiscard(n int) {
	if pm == nil {
		return
	}
	pm.dropped.Add(float64(n))
	pm.depth.Sub(float64(n))
}

func (pm *poolMetrics) onStart() {
	if pm == nil {
		return
	}
	pm.busy.Inc()
	pm.depth.Dec()
}

func (pm *poolMetrics) onFinish(panicked bool) {
	if pm == nil {
		return
	}
	pm.busy.Dec()
	pm.completed.Inc()
	if panicked {
		pm.panicked.Inc()
	}
}
