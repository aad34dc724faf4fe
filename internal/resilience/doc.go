// Package resilience provides reliability patterns for calls to the
// collaborating services (image pipeline, notification service,
// translation queue).
//
// The package supports:
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	retryConfig := retry.DefaultConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
