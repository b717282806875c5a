// Package metrics provides Prometheus metrics for the task service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskservice"

// Authentication outcomes.
const (
	OutcomeCacheHit   = "cache_hit"
	OutcomeAuthorized = "authorized"
	OutcomeRejected   = "rejected"
	OutcomeError      = "error"
)

// Reconciliation actions.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionUnchanged = "unchanged"
)

var (
	// AuthRequestsTotal counts authentication attempts by outcome.
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_requests_total",
			Help:      "Total number of bearer token authentications",
		},
		[]string{"outcome"},
	)

	// TokenValidationDuration measures calls to the external identity provider.
	TokenValidationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_validation_duration_seconds",
			Help:      "Duration of identity provider token validations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	// UserReconciliationsTotal counts user store writes caused by authentication.
	UserReconciliationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_reconciliations_total",
			Help:      "Total number of user reconciliations by action",
		},
		[]string{"action"},
	)

	// HTTPRequestsTotal counts served HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordAuth records the outcome of one authentication.
func RecordAuth(outcome string) {
	AuthRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordTokenValidation records one identity provider call.
func RecordTokenValidation(result string, seconds float64) {
	TokenValidationDuration.WithLabelValues(result).Observe(seconds)
}

// RecordReconciliation records one user reconciliation.
func RecordReconciliation(action string) {
	UserReconciliationsTotal.WithLabelValues(action).Inc()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
