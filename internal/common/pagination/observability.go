package pagination

import (
	"log/slog"
	"time"
)

// LogRequest records an incoming paginated request.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"mode", string(params.Mode),
		"page", params.Page,
		"limit", params.Limit,
		"has_cursor", params.Cursor != nil)
}

// LogResponse records a completed page serve with its duration, for
// spotting slow keyset positions.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"mode", string(params.Mode),
		"limit", params.Limit,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError records a pagination failure with its classification
// (invalid_params, invalid_cursor, query_failed).
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"mode", string(params.Mode),
		"page", params.Page,
		"limit", params.Limit,
		"error", err.Error(),
		"error_type", errorType)
}
