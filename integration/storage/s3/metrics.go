package s3

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names reported to observers, logs and spans.
const (
	OpPresign = "presign"
	OpList    = "list_objects"
	OpDelete  = "delete_object"
)

// Observer receives the outcome of every client operation.
// status is the HTTP status code, or 0 when no response was received.
type Observer interface {
	Observe(op string, status int, err error, dur time.Duration)
}

// Metrics is a Prometheus-backed Observer.
type Metrics struct {
	ops       *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	responses *prometheus.CounterVec
}

// NewMetrics registers storage client collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "objstore",
			Subsystem: "s3",
			Name:      "ops_total",
			Help:      "Total number of storage client operations by result.",
		}, []string{"op", "result"}), // result = "ok" | "error"
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "objstore",
			Subsystem: "s3",
			Name:      "op_duration_seconds",
			Help:      "Histogram of storage client operation durations in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "objstore",
			Subsystem: "s3",
			Name:      "responses_total",
			Help:      "HTTP responses received from the storage provider by status code.",
		}, []string{"op", "status"}),
	}

	for _, c := range []prometheus.Collector{m.ops, m.latency, m.responses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements Observer.
func (m *Metrics) Observe(op string, status int, err error, dur time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(op, result).Inc()
	m.latency.WithLabelValues(op).Observe(dur.Seconds())
	if status > 0 {
		m.responses.WithLabelValues(op, strconv.Itoa(status)).Inc()
	}
}
