package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/garrettladley/sensorlink/internal/client/sahha"
	"github.com/garrettladley/sensorlink/internal/config"
	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/db"
	"github.com/garrettladley/sensorlink/internal/paths"
	"github.com/garrettladley/sensorlink/internal/sensor"
	"github.com/garrettladley/sensorlink/internal/session"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

// app holds everything a command needs to talk to the SDK.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	queries  *db.Queries
	store    credentials.Store
	tokens   sahha.TokenStore
	registry *sensor.Registry
	client   *sahha.Client

	closers []func() error
}

// openApp wires the local database, credential store, sensor registry and SDK
// client. Logs go to the log file so the TUI owns the terminal.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	a := &app{cfg: cfg}

	logger, closeLog, err := openLogger()
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)

	sqlDB, queries, err := openDB(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.queries = queries
	a.closers = append(a.closers, sqlDB.Close)

	store, closeStore, err := credentials.Open(ctx, cfg.Credentials, queries)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, closeStore)

	a.tokens = sahha.NewDBTokenStore(queries)
	a.registry = sensor.NewRegistry(queries, cfg.SupportedSensors)

	opts := []sahha.Option{
		sahha.WithLogger(logger),
		sahha.WithSessionID(session.NewID()),
		sahha.WithTimeout(cfg.CallTimeout),
		sahha.WithSettings(cfg.SettingsURL, nil),
	}
	if cfg.APIURL != "" {
		opts = append(opts, sahha.WithBaseURL(cfg.APIURL))
	}
	a.client = sahha.New(a.tokens, a.registry, opts...)

	logger.InfoContext(ctx, "sensorlink started",
		xslog.Version(),
		xslog.Environment(cfg.Environment.String()),
		xslog.Backend(string(cfg.Credentials.Backend)),
	)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openDB(ctx context.Context) (*sql.DB, *db.Queries, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, err
	}

	dbPath, err := paths.DB()
	if err != nil {
		return nil, nil, err
	}

	sqlDB, queries, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return sqlDB, queries, nil
}

func openLogger() (*slog.Logger, func() error, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, err
	}

	logPath, err := paths.Log()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return xslog.NewLoggerFromEnv(f), f.Close, nil
}
