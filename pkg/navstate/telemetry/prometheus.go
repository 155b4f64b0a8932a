package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the narrow surface the store and guard runner emit counters
// and durations through. NopMetrics implements it by discarding every
// observation, which disables metrics with zero overhead.
type Metrics interface {
	ObserveTransaction(outcome string, duration time.Duration)
	ObserveGuardEvaluation(graphID string, duration time.Duration, timedOut bool)
	IncPendingNavigations()
	DecPendingNavigations()
	ObserveGuidedFlowCompletion(flowID string)
}

// PrometheusMetrics implements Metrics using client_golang, prefixing every
// series with "navstate_" to avoid collisions with the host app's own
// metrics.
//
// Grounded on monitoring/prometheus.go's NewPrometheusMetrics, generalized
// from composable-creation/cache counters to navigation transactions and
// guard evaluations.
type PrometheusMetrics struct {
	transactions       *prometheus.CounterVec
	transactionLatency *prometheus.HistogramVec
	guardLatency       *prometheus.HistogramVec
	guardTimeouts      *prometheus.CounterVec
	pendingNavigations prometheus.Gauge
	flowCompletions    *prometheus.CounterVec
}

// NewPrometheusMetrics registers every navstate series against reg and
// panics on a duplicate registration, matching the teacher's fail-fast
// startup posture.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	transactions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navstate_transactions_total",
			Help: "Total navigation transactions, partitioned by outcome.",
		},
		[]string{"outcome"},
	)
	transactionLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navstate_transaction_duration_seconds",
			Help:    "Time from dispatch to a committed Outcome.",
			Buckets: []float64{.0005, .001, .002, .005, .01, .025, .05, .1, .25},
		},
		[]string{"outcome"},
	)
	guardLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navstate_guard_evaluation_duration_seconds",
			Help:    "Time spent evaluating a single guard chain, per graph.",
			Buckets: []float64{.001, .005, .01, .05, .1, .15, .5, 1, 2},
		},
		[]string{"graph_id"},
	)
	guardTimeouts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navstate_guard_timeouts_total",
			Help: "Guard evaluations that hit the safety timeout, partitioned by graph.",
		},
		[]string{"graph_id"},
	)
	pendingNavigations := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "navstate_pending_navigations",
			Help: "Current number of stores with a stashed PendingNavigation awaiting resume.",
		},
	)
	flowCompletions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navstate_guided_flow_completions_total",
			Help: "Guided flows that reached their final step, partitioned by flow id.",
		},
		[]string{"flow_id"},
	)

	reg.MustRegister(transactions, transactionLatency, guardLatency, guardTimeouts, pendingNavigations, flowCompletions)

	return &PrometheusMetrics{
		transactions:       transactions,
		transactionLatency: transactionLatency,
		guardLatency:       guardLatency,
		guardTimeouts:      guardTimeouts,
		pendingNavigations: pendingNavigations,
		flowCompletions:    flowCompletions,
	}
}

func (m *PrometheusMetrics) ObserveTransaction(outcome string, duration time.Duration) {
	m.transactions.WithLabelValues(outcome).Inc()
	m.transactionLatency.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveGuardEvaluation(graphID string, duration time.Duration, timedOut bool) {
	m.guardLatency.WithLabelValues(graphID).Observe(duration.Seconds())
	if timedOut {
		m.guardTimeouts.WithLabelValues(graphID).Inc()
	}
}

func (m *PrometheusMetrics) IncPendingNavigations() { m.pendingNavigations.Inc() }
func (m *PrometheusMetrics) DecPendingNavigations() { m.pendingNavigations.Dec() }

func (m *PrometheusMetrics) ObserveGuidedFlowCompletion(flowID string) {
	m.flowCompletions.WithLabelValues(flowID).Inc()
}

// NopMetrics discards every observation; it's the default when a store isn't
// configured with a Metrics backend.
type NopMetrics struct{}

func (NopMetrics) ObserveTransaction(string, time.Duration)          {}
func (NopMetrics) ObserveGuardEvaluation(string, time.Duration, bool) {}
func (NopMetrics) IncPendingNavigations()                             {}
func (NopMetrics) DecPendingNavigations()                             {}
func (NopMetrics) ObserveGuidedFlowCompletion(string)                 {}
