package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	sourceAttempts *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	parsedFields   *prometheus.HistogramVec
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		sourceAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pumpstat_source_attempts_total",
				Help: "Upstream source attempts by outcome",
			},
			[]string{"source", "outcome"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pumpstat_fallbacks_total",
				Help: "Responses served from sample data",
			},
			[]string{"endpoint"},
		),
		parsedFields: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pumpstat_parsed_fields",
				Help:    "Number of metrics extracted from an accepted report",
				Buckets: prometheus.LinearBuckets(1, 1, 9),
			},
			[]string{"source"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pumpstat_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSourceAttempt counts one resolver attempt against a source.
func (r *Recorder) RecordSourceAttempt(source, outcome string) {
	r.sourceAttempts.WithLabelValues(source, outcome).Inc()
}

// RecordFallback counts a response built from sample data.
func (r *Recorder) RecordFallback(endpoint string) {
	r.fallbacks.WithLabelValues(endpoint).Inc()
}

// RecordParsedFields observes how complete an accepted report was.
func (r *Recorder) RecordParsedFields(source string, n int) {
	r.parsedFields.WithLabelValues(source).Observe(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
