package worker

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fork-kitchen/internal/pkg/config"
)

// WorkerConfig holds the configuration for the retention worker.
// It controls the purge schedule, the retention window for soft-deleted
// recipes, and the operational parameters of the worker process.
//
// All fields have defaults and validation rules; configuration loading
// is fail-open, so the worker starts even when the environment carries
// invalid values.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the purge job.
	// Format: "minute hour day month weekday"
	// Default: "0 4 * * *" (every day at 4:00)
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "Asia/Tokyo"
	Timezone string

	// RetentionDays is how long a soft-deleted recipe is kept before it
	// becomes a purge candidate. Range: 1-365.
	// Default: 30
	RetentionDays int

	// PurgeTimeout is the maximum duration of a single purge run.
	// Default: 10 minutes
	PurgeTimeout time.Duration

	// HealthPort is the port of the health check HTTP server.
	// Range: 1024-65535. Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with production defaults:
// a nightly purge at 4:00 JST, a 30 day retention window, and a
// 10 minute run timeout.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "0 4 * * *",
		Timezone:      "Asia/Tokyo",
		RetentionDays: 30,
		PurgeTimeout:  10 * time.Minute,
		HealthPort:    9091,
	}
}

// Retention returns the retention window as a duration.
func (c *WorkerConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Validate checks the configuration values. If multiple fields are
// invalid, all errors are collected and returned together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.RetentionDays, 1, 365); err != nil {
		errors = append(errors, fmt.Errorf("retention days: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.PurgeTimeout); err != nil {
		errors = append(errors, fmt.Errorf("purge timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}
	return nil
}

// configFile mirrors WorkerConfig for the optional YAML config file.
// Pointer fields distinguish "absent" from "zero".
type configFile struct {
	CronSchedule  *string `yaml:"cron_schedule"`
	Timezone      *string `yaml:"timezone"`
	RetentionDays *int    `yaml:"retention_days"`
	PurgeTimeout  *string `yaml:"purge_timeout"`
	HealthPort    *int    `yaml:"health_port"`
}

// applyConfigFile overlays values from the YAML file at path onto cfg.
// File values replace the built-in defaults but are still subject to
// the same validation and env overrides as everything else. Like the
// env loading, this is fail-open: a missing or broken file logs a
// warning and leaves cfg untouched.
func applyConfigFile(path string, cfg *WorkerConfig, logger *slog.Logger, metrics *WorkerMetrics) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's own env
	if err != nil {
		logger.Warn("worker config file unreadable, using defaults",
			slog.String("path", path),
			slog.Any("error", err))
		metrics.RecordFallback("config_file", "default")
		return
	}

	var file configFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		logger.Warn("worker config file is not valid YAML, using defaults",
			slog.String("path", path),
			slog.Any("error", err))
		metrics.RecordValidationError("config_file")
		metrics.RecordFallback("config_file", "default")
		return
	}

	if file.CronSchedule != nil {
		cfg.CronSchedule = *file.CronSchedule
	}
	if file.Timezone != nil {
		cfg.Timezone = *file.Timezone
	}
	if file.RetentionDays != nil {
		cfg.RetentionDays = *file.RetentionDays
	}
	if file.PurgeTimeout != nil {
		if d, err := time.ParseDuration(*file.PurgeTimeout); err == nil {
			cfg.PurgeTimeout = d
		} else {
			logger.Warn("invalid purge_timeout in config file, keeping default",
				slog.String("value", *file.PurgeTimeout))
			metrics.RecordValidationError("purge_timeout")
		}
	}
	if file.HealthPort != nil {
		cfg.HealthPort = *file.HealthPort
	}

	// ファイル由来の値も最終的なバリデーションを通す
	if err := cfg.Validate(); err != nil {
		logger.Warn("worker config file produced an invalid configuration, reverting to defaults",
			slog.Any("error", err))
		metrics.RecordFallback("config_file", "default")
		*cfg = DefaultConfig()
	}
}

// LoadConfigFromEnv loads worker configuration with validation and
// fallback to defaults on failure. Precedence, lowest first: built-in
// defaults, then the optional YAML file named by WORKER_CONFIG_FILE,
// then individual environment variables.
//
// Environment variables:
//   - WORKER_CONFIG_FILE: Optional path to a YAML config file
//   - PURGE_CRON_SCHEDULE: Cron expression (default: "0 4 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "Asia/Tokyo")
//   - RETENTION_DAYS: Integer 1-365 (default: 30)
//   - PURGE_TIMEOUT: Duration string, e.g. "10m" (default: 10 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// The strategy is fail-open: an invalid value falls back to the
// default, logs a warning and increments the fallback metrics, and
// the returned configuration is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	if path := os.Getenv("WORKER_CONFIG_FILE"); path != "" {
		applyConfigFile(path, &cfg, logger, metrics)
	}

	result := config.LoadEnvWithFallback("PURGE_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cron_schedule")
		metrics.RecordFallback("cron_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CronSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("RETENTION_DAYS", cfg.RetentionDays, func(v int) error {
		return config.ValidateIntRange(v, 1, 365)
	})
	cfg.RetentionDays = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("retention_days")
		metrics.RecordFallback("retention_days", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "RetentionDays"),
				slog.String("warning", warning))
		}
	}

	// Purge runs are bulk deletes; cap the timeout at one hour.
	result = config.LoadEnvDuration("PURGE_TIMEOUT", cfg.PurgeTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
	})
	cfg.PurgeTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("purge_timeout")
		metrics.RecordFallback("purge_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "PurgeTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("any", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
