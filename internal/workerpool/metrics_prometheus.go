//go:build prometheus

package workerpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus gauges for the worker pool, gated behind the same
// "prometheus" build tag used by
// shockwave/pkg/shockwave/buffer_pool_prometheus.go. Ambient
// instrumentation only — never consulted by the dispatch path.
var (
	activeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "relay",
		Subsystem: "workerpool",
		Name:      "active_workers",
		Help:      "Number of workers currently executing a job.",
	})
	jobsQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relay",
		Subsystem: "workerpool",
		Name:      "jobs_queued_total",
		Help:      "Total number of jobs submitted to the pool.",
	})
)

type metrics struct{}

func newMetrics() *metrics { return &metrics{} }

func (m *metrics) activeInc() { activeWorkers.Inc() }
func (m *metrics) activeDec() { activeWorkers.Dec() }
func (m *metrics) queuedInc() { jobsQueuedTotal.Inc() }
