package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/talos/internal/config"
	"github.com/UnknownOlympus/talos/internal/lib/logger/sl"
	"github.com/UnknownOlympus/talos/internal/metrics"
	"github.com/UnknownOlympus/talos/internal/repository"
	"github.com/UnknownOlympus/talos/internal/server"
	"github.com/UnknownOlympus/talos/internal/services/employees"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if err != nil {
		log.Fatalf("Failed to configure DB pool: %v", err)
	}
	defer dtb.Close()

	// The database container may come up after this one. Keep serving while
	// waiting, so /health can report db down in the meantime.
	go waitForDatabase(ctx, logger, dtb)

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	staff := employees.NewStaff(logger, employeeRepo, appMetrics)

	healthHandler := server.NewHealthChecker(dtb, logger)
	employeeHandler := server.NewEmployeeHandler(staff, logger)
	router := server.NewRouter(healthHandler, employeeHandler, reg, appMetrics, logger)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	if err = server.Start(ctx, logger, router, cfg.HTTP.Host, cfg.HTTP.Port); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", sl.Err(err))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// waitForDatabase pings the database with a capped backoff and applies the
// schema migrations once it becomes reachable. The service keeps running even
// if the database never shows up; the health endpoint reports the outage.
func waitForDatabase(ctx context.Context, logger *slog.Logger, dtb *pgxpool.Pool) {
	const maxRetries = 10
	maxWait := 10 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := dtb.Ping(ctx); err == nil {
			sqlDB := stdlib.OpenDBFromPool(dtb)
			if migrationErr := goose.Up(sqlDB, "migrations"); migrationErr != nil {
				logger.ErrorContext(ctx, "Failed to apply migrations", sl.Err(migrationErr))
				return
			}
			logger.InfoContext(ctx, "DB connected and migrations applied")
			return
		}

		wait := time.Duration(1<<attempt) * time.Second
		if wait > maxWait {
			wait = maxWait
		}
		logger.WarnContext(ctx, "DB not ready, retrying",
			"attempt", attempt, "max_retries", maxRetries, "wait", wait.String())

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}

	logger.ErrorContext(ctx, "Could not connect to DB after retries. Health endpoint will report db down.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
