// Package metrics provides centralized Prometheus metrics for business
// operations. HTTP transport metrics live in the handler layer; this
// package tracks what the application actually does: recipes created
// and forked, searches served, library activity, retention purges, and
// database health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// RecipesCreatedTotal counts recipe creations by kind (root or fork)
	RecipesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_created_total",
			Help: "Total number of recipes created, by kind",
		},
		[]string{"kind"}, // kind: root | fork
	)

	// RecipesTotal tracks total number of live recipes in the database
	RecipesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipes_total",
			Help: "Total number of live recipes in the database",
		},
	)

	// SearchesTotal counts relevance searches served
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_searches_total",
			Help: "Total number of recipe searches served",
		},
	)

	// SearchResultCount measures how many hits each search page returned
	SearchResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_search_result_count",
			Help:    "Number of hits returned per search page",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// RecipesPurgedTotal counts recipes hard-deleted by the retention worker
	RecipesPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipes_purged_total",
			Help: "Total number of soft-deleted recipes purged by retention",
		},
	)

	// PurgeRunDuration measures the duration of retention purge runs
	PurgeRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_purge_run_duration_seconds",
			Help:    "Duration of retention purge runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
