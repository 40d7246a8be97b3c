// Package metrics exposes the Prometheus counters, gauges and histograms
// the monitor's core maintains. All mutations go through promauto-registered
// collectors, which are already atomic and safe for concurrent writers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sink is the shared metrics handle passed to every component that records
// cache, RPC or query observations. It is safe to use concurrently from any
// number of tasks.
type Sink struct {
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	RPCCallsTotal    prometheus.Counter
	RPCFailuresTotal prometheus.Counter

	CacheSize  prometheus.Gauge
	CurrentTip prometheus.Gauge
	QueueDepth prometheus.Gauge

	IsConfirmedLatencyMS prometheus.Histogram
	RPCCallLatencyMS     prometheus.Histogram
}

// NewSink registers and returns the monitor's metrics collectors against reg.
// Pass prometheus.DefaultRegisterer in production; tests that call NewSink
// more than once per binary should pass a fresh prometheus.NewRegistry() each
// time, since the promauto factory calls reg.MustRegister, which panics on a
// second registration against the same registry.
func NewSink(reg prometheus.Registerer) *Sink {
	factory := promauto.With(reg)

	return &Sink{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotmon_cache_hits_total",
			Help: "Total number of confirmation cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotmon_cache_misses_total",
			Help: "Total number of confirmation cache misses.",
		}),
		RPCCallsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotmon_rpc_calls_total",
			Help: "Total number of upstream RPC calls issued.",
		}),
		RPCFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "slotmon_rpc_failures_total",
			Help: "Total number of upstream RPC calls that failed.",
		}),
		CacheSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotmon_cache_size",
			Help: "Current number of entries held in the confirmation cache.",
		}),
		CurrentTip: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotmon_current_tip",
			Help: "Latest slot tip observed by the tip follower.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "slotmon_queue_depth",
			Help: "Current number of intervals waiting on the work queue.",
		}),
		IsConfirmedLatencyMS: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "slotmon_is_confirmed_latency_ms",
			Help:    "Latency of is_confirmed calls in milliseconds.",
			Buckets: prometheus.DefBuckets,
		}),
		RPCCallLatencyMS: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "slotmon_rpc_call_latency_ms",
			Help:    "Latency of upstream RPC calls in milliseconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
