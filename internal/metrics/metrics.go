// Package metrics exposes Prometheus collectors for probe activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modelprobe",
		Name:      "probes_total",
		Help:      "Number of session probes by outcome.",
	}, []string{"outcome"})

	probeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modelprobe",
		Name:      "probe_duration_seconds",
		Help:      "Time spent creating an inference session per model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"model"})

	modelsConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "modelprobe",
		Name:      "models_configured",
		Help:      "Number of enabled models in the current config.",
	})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelprobe",
		Name:      "probe_cache_hits_total",
		Help:      "Number of probes answered from the digest cache.",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelprobe",
		Name:      "probe_cache_misses_total",
		Help:      "Number of probes that missed the digest cache.",
	})
)

// RecordProbe counts a completed probe by outcome ("ok" or "failed").
func RecordProbe(outcome string) {
	probesTotal.WithLabelValues(outcome).Inc()
}

// RecordProbeDuration records how long a probe took for a model.
func RecordProbeDuration(model string, seconds float64) {
	probeDuration.WithLabelValues(model).Observe(seconds)
}

// SetConfiguredModels sets the number of enabled models.
func SetConfiguredModels(n int) {
	modelsConfigured.Set(float64(n))
}

// RecordCacheHit counts a probe served from cache.
func RecordCacheHit() {
	cacheHitsTotal.Inc()
}

// RecordCacheMiss counts a probe that had to run.
func RecordCacheMiss() {
	cacheMissesTotal.Inc()
}
