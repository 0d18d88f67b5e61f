// Package metrics defines the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal tracks requests by method, route, and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// Feed sampling metrics
var (
	// FeedSampleSize observes how many distinct videos each feed page received.
	FeedSampleSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_sample_size",
			Help:    "Distinct videos returned per sampled feed page",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// FeedShortPages counts pages cut short by the sampling attempt cap.
	FeedShortPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_short_pages_total",
			Help: "Feed pages shorter than requested due to attempt cap exhaustion",
		},
	)

	// FeedCandidateSource counts where ranking candidates were read from.
	FeedCandidateSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_candidate_source_total",
			Help: "Ranking candidate reads by source (cache or database)",
		},
		[]string{"source"},
	)
)

// Conversation metrics
var (
	// ConversationConflictRecoveries counts creation races resolved by re-lookup.
	ConversationConflictRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_conflict_recoveries_total",
			Help: "Conversation create conflicts recovered by a follow-up lookup",
		},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks query latency in seconds by statement kind.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks failed queries by statement kind.
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total failed database queries by statement kind",
		},
		[]string{"query"},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status.
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds.
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors.
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
