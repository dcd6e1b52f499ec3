//go:build !prometheus

package workerpool

// metrics is a no-op placeholder when the pool is built without the
// prometheus tag — see metrics_prometheus.go for the instrumented build,
// grounded on
// _examples/MiraiMindz-watt/shockwave/pkg/shockwave/buffer_pool_prometheus.go's
// build-tag gating of its buffer-pool metrics.
type metrics struct{}

func newMetrics() *metrics { return &metrics{} }

func (m *metrics) activeInc() {}
func (m *metrics) activeDec() {}
func (m *metrics) queuedInc() {}
