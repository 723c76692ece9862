package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshots delivered to a session, by outcome: applied, stale, loading.
	SnapshotCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteiro_snapshots_total",
			Help: "Project snapshots received by sessions",
		},
		[]string{"result"},
	)

	RecordsNormalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "canteiro_records_normalized_total",
			Help: "Stored project records normalized",
		},
	)

	ProjectWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteiro_project_writes_total",
			Help: "Project mutations persisted",
		},
		[]string{"operation"},
	)

	UseCaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteiro_use_case_duration_seconds",
			Help:    "Service use case duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"use_case", "success"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteiro_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordSnapshot counts a snapshot outcome and the records it carried.
func RecordSnapshot(result string, records int) {
	SnapshotCount.WithLabelValues(result).Inc()
	if records > 0 {
		RecordsNormalized.Add(float64(records))
	}
}

// IncrementProjectWrite counts a persisted project mutation.
func IncrementProjectWrite(operation string) {
	ProjectWrites.WithLabelValues(operation).Inc()
}

// RecordUseCase observes a service use case.
func RecordUseCase(name string, success bool, d time.Duration) {
	label := "false"
	if success {
		label = "true"
	}
	UseCaseDuration.WithLabelValues(name, label).Observe(d.Seconds())
}

// RecordHTTPRequestDuration observes a served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}
