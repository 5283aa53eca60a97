package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for InitiateValidation.
const (
	ReasonInvalidFormat   = "invalid_format"
	ReasonSubjectNotFound = "subject_not_found"
	ReasonStoreError      = "store_error"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	Initiated         prometheus.Counter
	Rejected          *prometheus.CounterVec
	Finished          *prometheus.CounterVec
	ExecutionDuration prometheus.Histogram
	Anomalies         prometheus.Histogram
	BackendTier       *prometheus.GaugeVec
}

// New registers all validation metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Initiated: f.NewCounter(prometheus.CounterOpts{
			Name: "recordcheck_validations_initiated_total",
			Help: "Total number of validation processes created",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordcheck_validations_rejected_total",
			Help: "Validation requests rejected before a process was created",
		}, []string{"reason"}),
		Finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordcheck_validations_finished_total",
			Help: "Background executions that reached a terminal status",
		}, []string{"status"}),
		ExecutionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "recordcheck_validation_execution_duration_seconds",
			Help:    "Duration of background validation executions",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Anomalies: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "recordcheck_comparison_anomalies",
			Help:    "Anomalies found per comparison",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		BackendTier: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "recordcheck_backend_tier",
			Help: "Active storage tier (1 for the tier in use)",
		}, []string{"tier", "backend"}),
	}
}

// IncrementInitiated records a created process.
func (m *Metrics) IncrementInitiated() {
	m.Initiated.Inc()
}

// IncrementRejected records a request rejected for reason.
func (m *Metrics) IncrementRejected(reason string) {
	m.Rejected.WithLabelValues(reason).Inc()
}

// ObserveExecution records a finished execution.
// Call with time.Now() at the start of the execution.
func (m *Metrics) ObserveExecution(status string, start time.Time) {
	m.Finished.WithLabelValues(status).Inc()
	m.ExecutionDuration.Observe(time.Since(start).Seconds())
}

// ObserveAnomalies records the anomaly count of one comparison.
func (m *Metrics) ObserveAnomalies(n int) {
	m.Anomalies.Observe(float64(n))
}

// SetBackendTier marks tier/backend as the active storage selection.
func (m *Metrics) SetBackendTier(tier, backend string) {
	m.BackendTier.Reset()
	m.BackendTier.WithLabelValues(tier, backend).Set(1)
}
