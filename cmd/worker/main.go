// Package main is the entry point of the retention worker.
//
// The worker runs the nightly purge of soft-deleted recipes: rows whose
// deleted_at is older than the retention window are hard-deleted, unless
// they are still referenced as a fork parent or root or by cooking logs.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/respond"
	pgRepo "fork-kitchen/internal/infra/adapter/persistence/postgres"
	"fork-kitchen/internal/infra/collaborator"
	"fork-kitchen/internal/infra/db"
	workerPkg "fork-kitchen/internal/infra/worker"
	"fork-kitchen/internal/observability/metrics"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()

	cfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("retention_days", cfg.RetentionDays),
		slog.Duration("purge_timeout", cfg.PurgeTimeout))

	recipeSvc := &recipeUC.Service{
		Recipes: pgRepo.NewRecipeRepo(database),
		Logs:    pgRepo.NewRecipeLogRepo(database),
		Collab:  collaborator.NewNoopSet(),
		PageCfg: pagination.DefaultConfig(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startMetricsServer(ctx, logger)

	startCronWorker(logger, recipeSvc, database, cfg, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for the API
// server's migrations to have run.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// waitForMigrations probes for the recipes table. The worker and the
// API server start together; the API owns the schema, so the worker
// waits briefly instead of failing on a fresh database.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM recipes LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Warn("recipes table still missing after waiting; continuing anyway")
}

// startCronWorker starts the cron scheduler and runs the purge job on
// the configured schedule. Blocks forever.
func startCronWorker(
	logger *slog.Logger,
	svc *recipeUC.Service,
	database *sql.DB,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runPurgeJob(logger, svc, database, cfg, workerMetrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))
	select {}
}

// runPurgeJob executes a single purge run with timeout and error handling.
func runPurgeJob(
	logger *slog.Logger,
	svc *recipeUC.Service,
	database *sql.DB,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
) {
	startTime := time.Now()
	workerMetrics.RecordJobRun("started")
	logger.Info("purge started", slog.Int("retention_days", cfg.RetentionDays))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PurgeTimeout)
	defer cancel()

	purged, err := svc.PurgeDeleted(ctx, cfg.Retention())
	duration := time.Since(startTime)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("purge failed", slog.String("error", respond.SanitizeError(err)))
		workerMetrics.RecordJobRun("failure")
		workerMetrics.RecordJobDuration(duration.Seconds())
		return
	}

	workerMetrics.RecordJobRun("success")
	workerMetrics.RecordJobDuration(duration.Seconds())
	workerMetrics.RecordRecipesPurged(purged)
	workerMetrics.RecordLastSuccess()
	metrics.RecordPurgeRun(purged, duration)

	refreshRecipeGauge(ctx, logger, database)

	logger.Info("purge completed",
		slog.Int64("purged", purged),
		slog.Duration("duration", duration))
}

// refreshRecipeGauge updates the live-recipe gauge after a purge run.
func refreshRecipeGauge(ctx context.Context, logger *slog.Logger, database *sql.DB) {
	var count int64
	err := database.QueryRowContext(ctx, "SELECT count(*) FROM recipes WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		logger.Warn("failed to count live recipes", slog.Any("error", err))
		return
	}
	metrics.UpdateRecipesTotal(count)
}
