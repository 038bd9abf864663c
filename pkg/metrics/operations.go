package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records duration and outcome counts for quotation
// operations (save, load, document render).
type OperationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewOperationMetrics registers the operation metrics on the provided registerer.
func NewOperationMetrics(reg prometheus.Registerer) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quotation_operation_duration_seconds",
		Help:    "Duration of quotation operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_operation_success",
		Help: "Successful quotation operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_operation_failure",
		Help: "Failed quotation operations.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &OperationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records the outcome and duration of one operation.
func (m *OperationMetrics) Observe(operation string, took time.Duration, err error) {
	if m == nil {
		return
	}
	label := normalizeLabel(operation)
	if m.duration != nil {
		m.duration.WithLabelValues(label).Observe(took.Seconds())
	}
	if err != nil {
		if m.failure != nil {
			m.failure.WithLabelValues(label).Inc()
		}
		return
	}
	if m.success != nil {
		m.success.WithLabelValues(label).Inc()
	}
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
