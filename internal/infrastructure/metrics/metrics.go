package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the replay engine.
type Metrics struct {
	// Replay metrics
	TransactionsApplied *prometheus.CounterVec
	TransactionsDropped *prometheus.CounterVec
	RecordsMalformed    prometheus.Counter
	ReplayDuration      prometheus.Histogram

	// Account metrics
	AccountsTracked prometheus.Gauge
	AccountsLocked  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrun_transactions_applied_total",
				Help: "Total number of transactions applied to the ledger by kind",
			},
			[]string{"kind"},
		),
		TransactionsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrun_transactions_dropped_total",
				Help: "Total number of transactions dropped without state change",
			},
			[]string{"kind", "reason"},
		),
		RecordsMalformed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrun_records_malformed_total",
			Help: "Total number of raw records skipped as malformed",
		}),
		ReplayDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payrun_replay_duration_seconds",
			Help:    "Duration of full replay runs",
			Buckets: prometheus.DefBuckets,
		}),

		AccountsTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "payrun_accounts_tracked",
			Help: "Number of distinct client accounts in the ledger",
		}),
		AccountsLocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrun_accounts_locked_total",
			Help: "Total number of chargebacks that locked an account",
		}),
	}
}
