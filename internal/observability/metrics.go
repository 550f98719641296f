package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

// ServiceMetrics implements the application service's Metrics interface on
// top of a prometheus registry.
type ServiceMetrics struct {
	getAttempts    *prometheus.CounterVec
	getFailures    *prometheus.CounterVec
	submitAttempts *prometheus.CounterVec
	submitFailures *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
	clearAttempts  *prometheus.CounterVec
	clearFailures  *prometheus.CounterVec
}

// NewServiceMetrics registers the service collectors on reg.
func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	m := &ServiceMetrics{
		getAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_get_attempts_total",
			Help: "Scoreboard reads attempted, by mode.",
		}, []string{"mode"}),
		getFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_get_failures_total",
			Help: "Scoreboard reads that failed at the store, by mode.",
		}, []string{"mode"}),
		submitAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_submit_attempts_total",
			Help: "Score submissions attempted, by mode.",
		}, []string{"mode"}),
		submitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_submit_failures_total",
			Help: "Score submissions that failed at the store, by mode.",
		}, []string{"mode"}),
		submitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaderboard_submit_duration_seconds",
			Help:    "End-to-end submission handling time, by mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		clearAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_clear_attempts_total",
			Help: "Scoreboard clears attempted, by mode.",
		}, []string{"mode"}),
		clearFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_clear_failures_total",
			Help: "Scoreboard clears that failed at the store, by mode.",
		}, []string{"mode"}),
	}
	reg.MustRegister(
		m.getAttempts, m.getFailures,
		m.submitAttempts, m.submitFailures, m.submitDuration,
		m.clearAttempts, m.clearFailures,
	)
	return m
}

func (m *ServiceMetrics) RecordGetAttempt(mode leaderboarddomain.Mode) {
	m.getAttempts.WithLabelValues(string(mode)).Inc()
}

func (m *ServiceMetrics) RecordGetFailure(mode leaderboarddomain.Mode) {
	m.getFailures.WithLabelValues(string(mode)).Inc()
}

func (m *ServiceMetrics) RecordSubmitAttempt(mode leaderboarddomain.Mode) {
	m.submitAttempts.WithLabelValues(string(mode)).Inc()
}

func (m *ServiceMetrics) RecordSubmitFailure(mode leaderboarddomain.Mode) {
	m.submitFailures.WithLabelValues(string(mode)).Inc()
}

func (m *ServiceMetrics) RecordSubmitDuration(mode leaderboarddomain.Mode, d time.Duration) {
	m.submitDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (m *ServiceMetrics) RecordClearAttempt(mode leaderboarddomain.Mode) {
	m.clearAttempts.WithLabelValues(string(mode)).Inc()
}

func (m *ServiceMetrics) RecordClearFailure(mode leaderboarddomain.Mode) {
	m.clearFailures.WithLabelValues(string(mode)).Inc()
}

// ClientMetrics counts which path served each client operation, and remote
// clear failures that were absorbed by the fire-and-forget contract.
type ClientMetrics struct {
	served        *prometheus.CounterVec
	clearFailures prometheus.Counter
}

// NewClientMetrics registers the client collectors on reg.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_client_served_total",
			Help: "Manager operations by operation and serving source.",
		}, []string{"operation", "source"}),
		clearFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_client_remote_clear_failures_total",
			Help: "Detached remote clear attempts that failed.",
		}),
	}
	reg.MustRegister(m.served, m.clearFailures)
	return m
}

func (m *ClientMetrics) RecordServed(operation, source string) {
	m.served.WithLabelValues(operation, source).Inc()
}

func (m *ClientMetrics) RecordRemoteClearFailure() {
	m.clearFailures.Inc()
}

// MetricsHandler exposes reg in the prometheus text format.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
