// Package main is the entry point of the recipe API server.
//
// @title                       Fork Kitchen API
// @version                     1.0
// @description                 レシピのフォーク系譜・調理ログ・保存ライブラリを提供するAPIサーバー
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "fork-kitchen/docs" // swagger docs
	"fork-kitchen/internal/common/pagination"
	hhttp "fork-kitchen/internal/handler/http"
	hcookinglog "fork-kitchen/internal/handler/http/cookinglog"
	hrecipe "fork-kitchen/internal/handler/http/recipe"
	"fork-kitchen/internal/handler/http/requestid"
	hsaved "fork-kitchen/internal/handler/http/saved"
	pgRepo "fork-kitchen/internal/infra/adapter/persistence/postgres"
	"fork-kitchen/internal/infra/collaborator"
	"fork-kitchen/internal/infra/db"
	"fork-kitchen/internal/observability/tracing"
	cooklogUC "fork-kitchen/internal/usecase/cookinglog"
	recipeUC "fork-kitchen/internal/usecase/recipe"
	savedUC "fork-kitchen/internal/usecase/saved"
	"fork-kitchen/pkg/config"
)

func main() {
	logger := initLogger()

	validateJWTSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database)

	runServer(logger, handler, version)
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

// validateJWTSecret validates the JWT_SECRET environment variable for security requirements.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// newCollaborators builds the collaborator client set from environment
// configuration. A collaborator whose base URL is unset stays a no-op,
// so the server runs standalone in development.
func newCollaborators(logger *slog.Logger) collaborator.Set {
	set := collaborator.NewNoopSet()
	timeout := config.GetEnvDuration("COLLABORATOR_TIMEOUT", 5*time.Second)

	if url := config.GetEnvString("IMAGE_SERVICE_URL", ""); url != "" {
		set.Images = collaborator.NewHTTPImagePipeline(collaborator.ImagePipelineConfig{BaseURL: url, Timeout: timeout})
		logger.Info("image pipeline enabled", slog.String("url", url))
	}
	if url := config.GetEnvString("NOTIFY_SERVICE_URL", ""); url != "" {
		set.Notifier = collaborator.NewHTTPNotifier(collaborator.NotifierConfig{BaseURL: url, Timeout: timeout})
		logger.Info("notifier enabled", slog.String("url", url))
	}
	if url := config.GetEnvString("TRANSLATE_SERVICE_URL", ""); url != "" {
		set.Translations = collaborator.NewHTTPTranslationQueue(collaborator.TranslationQueueConfig{BaseURL: url, Timeout: timeout})
		logger.Info("translation queue enabled", slog.String("url", url))
	}
	return set
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB) http.Handler {
	collab := newCollaborators(logger)
	paginationCfg := pagination.LoadFromEnv()

	recipeRepo := pgRepo.NewRecipeRepo(database)
	logRepo := pgRepo.NewRecipeLogRepo(database)
	savedRepo := pgRepo.NewSavedRecipeRepo(database)

	recipeSvc := &recipeUC.Service{
		Recipes: recipeRepo,
		Logs:    logRepo,
		Collab:  collab,
		PageCfg: paginationCfg,
	}
	savedSvc := &savedUC.Service{
		Saved:   savedRepo,
		Recipes: recipeRepo,
		PageCfg: paginationCfg,
	}
	cooklogSvc := &cooklogUC.Service{
		Logs:    logRepo,
		Recipes: recipeRepo,
		Collab:  collab,
		PageCfg: paginationCfg,
	}

	mux := setupRoutes(logger, database, recipeSvc, savedSvc, cooklogSvc, paginationCfg)
	return applyMiddleware(mux, logger)
}

// setupRoutes registers the operational endpoints and the domain routes.
// Authentication is applied per route by each domain package: reads take
// an optional token, writes and the library endpoints require one.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	recipeSvc *recipeUC.Service,
	savedSvc *savedUC.Service,
	cooklogSvc *cooklogUC.Service,
	paginationCfg pagination.Config,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", hhttp.HealthHandler{DB: database, Version: getVersion()})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hrecipe.Register(mux, recipeSvc, paginationCfg, logger)
	hsaved.Register(mux, savedSvc, paginationCfg)
	hcookinglog.Register(mux, cooklogSvc, paginationCfg)

	return mux
}

// applyMiddleware wraps the mux with the middleware chain. Order
// matters: the list reads outermost first, and is applied in reverse.
func applyMiddleware(mux *http.ServeMux, logger *slog.Logger) http.Handler {
	limiter := hhttp.NewRateLimiter(
		float64(config.GetEnvInt("RATE_LIMIT_RPS", 50)),
		config.GetEnvInt("RATE_LIMIT_BURST", 100),
	)

	middlewares := []func(http.Handler) http.Handler{
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(1 << 20), // 1MB
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.Timeout(config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)),
		limiter.Limit,
		requestid.Middleware,
		tracing.Middleware,
	}

	var handler http.Handler = mux
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
