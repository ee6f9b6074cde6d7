package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route pattern
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xgi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "route"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "xgi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "route"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "xgi_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// CatalogQueries counts catalog queries by collection and outcome
	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xgi_catalog_queries_total",
			Help: "Total number of catalog queries",
		},
		[]string{"collection", "outcome"},
	)

	// Registrations counts player registrations and newsletter subscriptions
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xgi_registrations_total",
			Help: "Total number of player registrations and newsletter subscriptions",
		},
		[]string{"kind", "outcome"},
	)
)

// Outcome labels
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
)
