// Package metrics defines the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

// Business metrics
var (
	CalculationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drop_calculations_total",
			Help: "Completed probability report computations.",
		},
	)

	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "Fuzzy catalog lookups served.",
		},
	)

	SimulationTrials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "simulation_trials_total",
			Help: "Monte Carlo trials executed.",
		},
	)

	CatalogReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Catalog file cache invalidations triggered by the watcher.",
		},
	)
)
