package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	submissionsTotal        prometheus.Counter
	rejectionsTotal         *prometheus.CounterVec
	foldDurationSeconds     prometheus.Histogram
	reconciliationsResolved prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for the
// feedback service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedback_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		submissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total number of accepted feedback submissions.",
		})

		rejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_rejections_total",
			Help: "Total number of rejected feedback submissions by reason.",
		}, []string{"reason"})

		foldDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_fold_duration_seconds",
			Help:    "Time spent folding the five rating cells of a submission.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		})

		reconciliationsResolved = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_class_reconciliations_total",
			Help: "Total number of pending class mappings resolved.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			submissionsTotal,
			rejectionsTotal,
			foldDurationSeconds,
			reconciliationsResolved,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// SubmissionsTotal exposes the accepted-submissions counter.
func SubmissionsTotal() prometheus.Counter {
	RegisterMetrics()
	return submissionsTotal
}

// RejectionsTotal exposes the rejected-submissions counter.
func RejectionsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return rejectionsTotal
}

// FoldDuration exposes the fold latency histogram.
func FoldDuration() prometheus.Histogram {
	RegisterMetrics()
	return foldDurationSeconds
}

// ReconciliationsResolved exposes the resolved-mappings counter.
func ReconciliationsResolved() prometheus.Counter {
	RegisterMetrics()
	return reconciliationsResolved
}
