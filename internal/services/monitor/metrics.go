package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_cycles_total", Help: "Monitor cycles by result (ok, list_error).",
	}, []string{"result"})
	mCycleDur = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "monitor_cycle_duration_seconds", Help: "Duration of one full monitor cycle.",
		Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900},
	})
	mSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_checks_skipped_total", Help: "Checks not due in their cycle.",
	})
	mProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_probes_total", Help: "Executed probes by outcome status.",
	}, []string{"status"})
	mProbeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "monitor_probe_latency_seconds", Help: "Probe round trip time.",
		Buckets: prometheus.DefBuckets,
	})
	mStoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_store_errors_total", Help: "Store failures by operation.",
	}, []string{"op"})
	mWebhooks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_webhooks_total", Help: "Webhook deliveries by result (ok, error).",
	}, []string{"result"})
)
