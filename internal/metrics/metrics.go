package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_gate_decisions_total",
			Help: "Session gate outcomes by decision",
		},
		[]string{"decision"},
	)

	SessionValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_session_validation_duration_seconds",
			Help:    "Time spent validating or refreshing a session credential",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	SessionValidationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_session_validation_errors_total",
			Help: "Session validation calls that failed outright",
		},
	)

	CookieRotationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_cookie_rotations_total",
			Help: "Credential cookies relayed to clients",
		},
	)

	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_auth_events_total",
			Help: "Session-change events delivered on the event bus",
		},
		[]string{"kind"},
	)

	AuthEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_auth_events_dropped_total",
			Help: "Session-change events dropped due to a full receive buffer",
		},
	)

	AuthActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_auth_actions_total",
			Help: "One-shot auth actions by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)
