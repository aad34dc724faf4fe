package metrics

import "time"

// RecordRecipeCreated records one recipe creation. Kind is "root" for a
// from-scratch recipe and "fork" for a variant.
func RecordRecipeCreated(kind string) {
	RecipesCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordSearch records one served search page and its hit count.
func RecordSearch(hits int) {
	SearchesTotal.Inc()
	SearchResultCount.Observe(float64(hits))
}

// RecordPurgeRun records the outcome of one retention purge run.
func RecordPurgeRun(purged int64, duration time.Duration) {
	RecipesPurgedTotal.Add(float64(purged))
	PurgeRunDuration.Observe(duration.Seconds())
}

// UpdateRecipesTotal updates the live-recipe gauge.
// Updated periodically by the maintenance worker.
func UpdateRecipesTotal(count int64) {
	RecipesTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_recipes", "purge").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
