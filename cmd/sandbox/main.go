package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/sensorlink/internal/sandbox"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

const (
	keyPort     = "port"
	keyApps     = "apps"
	keyTokenTTL = "token_ttl"

	shutdownTimeout = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := sandbox.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	store, err := initStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize profile store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close profile store", xslog.Error(err))
		}
	}()

	service := sandbox.NewService(cfg.Apps, store, cfg.TokenTTL)
	limiter := sandbox.NewIPLimiter(cfg.RateLimit)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           sandbox.NewRouter(service, limiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		service.RunTokenSweeper(xslog.WithLogger(gctx, logger), cfg.TokenSweepInterval)
		return nil
	})

	g.Go(func() error {
		logger.InfoContext(ctx, "starting sandbox",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.Int(keyApps, len(cfg.Apps)),
			slog.Duration(keyTokenTTL, cfg.TokenTTL),
			xslog.Environment(string(cfg.Env)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.InfoContext(ctx, "server stopped")
		return nil
	})

	return g.Wait()
}

func initStore(ctx context.Context, cfg sandbox.Config, logger *slog.Logger) (sandbox.ProfileStore, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env.IsProduction() {
			return nil, errors.New("DATABASE_URL is required in production")
		}
		logger.InfoContext(ctx, "initializing in-memory profile store", xslog.Backend("memory"))
		return sandbox.NewMemoryStore(), nil
	}

	logger.InfoContext(ctx, "initializing PostgreSQL profile store", xslog.Backend("postgres"))
	return sandbox.OpenPostgres(ctx, cfg.DatabaseURL)
}
