package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder turns Results into Prometheus metrics on its own registry.
// Safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	blocks   *prometheus.CounterVec
}

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "elapsed_block_duration_seconds",
				Help: "Wall-clock duration of timed blocks",
				// 1µs .. ~17min
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 16),
			},
			[]string{"label"},
		),
		blocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elapsed_blocks_total",
				Help: "Timed blocks by outcome",
			},
			[]string{"label", "outcome"},
		),
	}
	r.registry.MustRegister(r.duration, r.blocks)
	return r
}

// Record adds one result
func (r *Recorder) Record(res *Result) {
	r.blocks.WithLabelValues(res.Label, string(res.Outcome)).Inc()
	r.duration.WithLabelValues(res.Label).Observe(res.Seconds)
}

// Registry returns the registry holding the recorder's collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
