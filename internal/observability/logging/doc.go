// Package logging builds the structured slog loggers used across the
// API and worker processes, and threads request IDs into log records.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("recipe created", slog.String("public_id", id))
//
//	// Inside a handler, correlate with the request:
//	logging.WithRequestID(r.Context(), logger).Info("listing recipes")
package logging
