// Package metrics provides Prometheus metrics for the token issuer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the global Prometheus registry for all metrics.
	Registry = prometheus.NewRegistry()

	initialized = false
)

// Authentication attempt outcomes, used as the "outcome" label.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeMisconfigured  = "misconfigured"
)

// Init registers all collectors with Registry. Safe to call more than once.
func Init() error {
	if initialized {
		return nil
	}

	if err := Registry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if err := Registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return err
	}

	if err := registerHTTPMetrics(); err != nil {
		return err
	}

	if err := registerAuthMetrics(); err != nil {
		return err
	}

	initialized = true
	return nil
}

var (
	// AuthAttempts counts password submissions by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsauth_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"outcome"},
	)

	// TokensIssued counts successfully minted tokens.
	TokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "docsauth_tokens_issued_total",
			Help: "Total number of issued tokens",
		},
	)
)

func registerAuthMetrics() error {
	metrics := []prometheus.Collector{
		AuthAttempts,
		TokensIssued,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordAttempt increments the attempt counter for outcome.
func RecordAttempt(outcome string) {
	AuthAttempts.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		TokensIssued.Inc()
	}
}
