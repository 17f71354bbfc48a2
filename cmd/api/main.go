package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"github.com/compasslabs/career-compass-backend/internal/ai"
	"github.com/compasslabs/career-compass-backend/internal/api"
	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/config"
	"github.com/compasslabs/career-compass-backend/internal/db"
	"github.com/compasslabs/career-compass-backend/internal/email"
	"github.com/compasslabs/career-compass-backend/internal/metrics"
	"github.com/compasslabs/career-compass-backend/internal/store"
	stripeinternal "github.com/compasslabs/career-compass-backend/internal/stripe"
	"github.com/compasslabs/career-compass-backend/internal/worker"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// ── Assessment catalog ────────────────────────────────────────────────────
	// Definitions are embedded and validated at load time. A bad definition
	// means the binary is broken — refuse to start.
	catalog, err := assessment.Load()
	if err != nil {
		return fmt.Errorf("assessment catalog: %w", err)
	}
	logger.Info("assessment catalog loaded", "types", len(catalog.Types()))

	// ── Database ──────────────────────────────────────────────────────────────
	pool, queries, err := openDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	logger.Info("database connected")

	// ── Store (atomic multi-step writes) ──────────────────────────────────────
	st := store.New(pool, queries)

	// ── Metrics ───────────────────────────────────────────────────────────────
	m := metrics.New()

	// ── Stripe ────────────────────────────────────────────────────────────────
	stripeClient := stripeinternal.NewClient(cfg.StripeSecretKey)

	// ── AI ────────────────────────────────────────────────────────────────────
	// Anthropic is primary. DeepSeek is the fallback when DEEPSEEK_API_KEY is
	// also set. In production, set both keys for maximum resilience.
	var advisor ai.Advisor
	switch {
	case cfg.AnthropicAPIKey != "" && cfg.DeepSeekAPIKey != "":
		primary := ai.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		secondary := ai.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
		advisor = ai.NewFallbackAdvisor(primary, secondary, logger)
		logger.Info("ai: using Anthropic with DeepSeek fallback")
	case cfg.AnthropicAPIKey != "":
		advisor = ai.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		logger.Info("ai: using Anthropic only")
	default:
		advisor = ai.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
		logger.Info("ai: using DeepSeek only")
	}

	// ── Email (Resend) ────────────────────────────────────────────────────────
	mailer := email.NewResendClient(
		cfg.ResendAPIKey,
		cfg.EmailFromAddr,
		cfg.EmailFromName,
		cfg.BaseURL,
	)

	// ── Worker ────────────────────────────────────────────────────────────────
	job := worker.NewJob(queries, st, catalog, advisor, mailer, m, logger)
	runner := worker.NewRunner(job, st, queries, m, worker.RunnerConfig{
		Workers:      cfg.WorkerCount,
		PollInterval: cfg.PollInterval,
		JobTimeout:   cfg.JobTimeout,
		MaxRetries:   cfg.MaxRetries,
	}, logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		queries,
		st,
		catalog,
		stripeClient,
		runner, // *Runner satisfies worker.Enqueuer
		mailer,
		m,
		api.Config{
			BaseURL:             cfg.BaseURL,
			AllowedOrigins:      cfg.AllowedOrigins,
			StripeWebhookSecret: cfg.StripeWebhookSecret,
			ReportPriceCents:    cfg.ReportPriceCents,
			Env:                 cfg.Env,
		},
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generous — report endpoint can be slow on first hit
		IdleTimeout:  120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal. Worker and HTTP server both respect it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the worker pool in a background goroutine. It blocks until ctx is done.
	go runner.Start(ctx)

	// Start the HTTP server in a background goroutine.
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight HTTP requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// The worker goroutine will exit when ctx is cancelled (already done).
	// runner.Start blocks until all worker goroutines finish — nothing extra needed.
	logger.Info("shutdown complete")
	return nil
}

// openDB opens the connection pool, verifies connectivity, and applies the
// idempotent schema migration before handing back the query layer.
func openDB(dsn string) (*sql.DB, *db.Queries, error) {
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	// Tune the connection pool.
	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	// Verify the connection is reachable before proceeding.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return pool, db.New(pool), nil
}
