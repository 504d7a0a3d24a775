package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	expiryRunsTotal   *prometheus.CounterVec
	accountOutcomes   *prometheus.CounterVec
	warningsTotal     *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the ops API.",
		}, []string{"method", "path", "status"})

		expiryRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "expiry_runs_total",
			Help:      "Expiry lifecycle runs by result (ok, failed, skipped).",
		}, []string{"result"})

		accountOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "expiry_account_outcomes_total",
			Help:      "Per-account deactivation outcomes.",
		}, []string{"outcome"})

		warningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "expiry_warnings_total",
			Help:      "Expiry warning notifications by result (sent, skipped, failed).",
		}, []string{"result"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncRun(result string) {
	if expiryRunsTotal == nil {
		return
	}
	expiryRunsTotal.WithLabelValues(result).Inc()
}

func IncOutcome(outcome string) {
	if accountOutcomes == nil {
		return
	}
	accountOutcomes.WithLabelValues(outcome).Inc()
}

func IncWarning(result string) {
	if warningsTotal == nil {
		return
	}
	warningsTotal.WithLabelValues(result).Inc()
}
