package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the upload pipeline.
type Metrics struct {
	uploadsTotal           *prometheus.CounterVec
	classificationDuration prometheus.Histogram
	persistFailures        prometheus.Counter
	blobCacheHits          prometheus.Counter
	blobCacheMisses        prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		uploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uploads_total",
				Help: "Total number of upload requests by outcome",
			},
			[]string{"outcome"},
		),
		classificationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "classification_duration_seconds",
				Help:    "Latency of calls to the classification service",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		persistFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "persist_failures_total",
				Help: "Total number of absorbed database write failures",
			},
		),
		blobCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blob_cache_hits_total",
				Help: "Total number of blob cache hits",
			},
		),
		blobCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blob_cache_misses_total",
				Help: "Total number of blob cache misses",
			},
		),
	}
}

// RecordUpload counts one finished upload request by outcome
// (accepted, rejected, classify_failed, store_failed).
func (m *Metrics) RecordUpload(outcome string) {
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveClassification records one classification call duration in seconds.
func (m *Metrics) ObserveClassification(seconds float64) {
	m.classificationDuration.Observe(seconds)
}

// RecordPersistFailure counts one absorbed database write failure.
func (m *Metrics) RecordPersistFailure() {
	m.persistFailures.Inc()
}

// RecordBlobCache counts one blob cache lookup.
func (m *Metrics) RecordBlobCache(hit bool) {
	if hit {
		m.blobCacheHits.Inc()
	} else {
		m.blobCacheMisses.Inc()
	}
}
