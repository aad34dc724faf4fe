package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fork-kitchen/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the retention worker.
// It embeds the standard ConfigMetrics for configuration monitoring and
// adds purge-job metrics.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Purge-job metrics:
//   - worker_purge_job_runs_total: Total purge runs by status (success/failure)
//   - worker_purge_job_duration_seconds: Duration histogram of purge runs
//   - worker_purge_job_recipes_purged_total: Total recipes hard-deleted
//   - worker_purge_job_last_success_timestamp: Unix timestamp of last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	// PurgeJobRunsTotal counts purge runs, labeled by status
	// (success, failure).
	PurgeJobRunsTotal *prometheus.CounterVec

	// PurgeJobDurationSeconds measures the duration of one purge run.
	// Buckets cover sub-second no-op runs up to the timeout ceiling.
	PurgeJobDurationSeconds prometheus.Histogram

	// PurgeJobRecipesPurgedTotal counts recipes hard-deleted across
	// all runs.
	PurgeJobRecipesPurgedTotal prometheus.Counter

	// PurgeJobLastSuccessTimestamp records the Unix timestamp of the
	// last successful run, for staleness alerting.
	PurgeJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance with all metrics
// initialized and registered via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		PurgeJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_purge_job_runs_total",
			Help: "Total number of purge job runs by status (success/failure)",
		}, []string{"status"}),

		PurgeJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_purge_job_duration_seconds",
			Help:    "Duration of purge job execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 600},
		}),

		PurgeJobRecipesPurgedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_purge_job_recipes_purged_total",
			Help: "Total number of recipes hard-deleted across all purge runs",
		}),

		PurgeJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_purge_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful purge job run",
		}),
	}
}

// MustRegister is a no-op kept for the conventional initialization
// pattern; metrics are auto-registered via promauto on creation.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordJobRun increments the run counter for the given status
// ("started", "success" or "failure").
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.PurgeJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of one purge run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.PurgeJobDurationSeconds.Observe(seconds)
}

// RecordRecipesPurged adds the number of recipes hard-deleted in one
// run to the total counter.
func (m *WorkerMetrics) RecordRecipesPurged(count int64) {
	m.PurgeJobRecipesPurgedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful
// purge completion.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.PurgeJobLastSuccessTimestamp.SetToCurrentTime()
}
