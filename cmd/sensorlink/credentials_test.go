package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/garrettladley/sensorlink/internal/client/sahha"
	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/db"
	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/sensor"
)

func TestClearCredentialsSignsOut(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sqlDB, q, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := credentials.NewSQLiteStore(q)
	tokens := sahha.NewDBTokenStore(q)

	stored := credentials.Credentials{AppID: "abc", AppSecret: "xyz", UserID: "123"}
	if err := credentials.Put(ctx, store, stored); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := tokens.Save(ctx, &oauth2.Token{
		AccessToken:  "profile-token",
		RefreshToken: "refresh-token",
		TokenType:    sahha.TokenTypeProfile,
		Expiry:       time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	client := sahha.New(tokens, sensor.NewRegistry(q, sdk.DefaultSensors), sahha.WithLogger(logger))
	if err := client.Configure(ctx, sdk.Settings{Environment: sdk.EnvironmentSandbox}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	authed, err := client.IsAuthenticated(ctx)
	if err != nil || !authed {
		t.Fatalf("IsAuthenticated before clear = %v, %v; want true, nil", authed, err)
	}

	if err := clearCredentials(ctx, store, tokens); err != nil {
		t.Fatalf("clearCredentials() error = %v", err)
	}

	authed, err = client.IsAuthenticated(ctx)
	if err != nil || authed {
		t.Errorf("IsAuthenticated after clear = %v, %v; want false, nil", authed, err)
	}
	if got := credentials.Load(ctx, store, logger); got != (credentials.Credentials{}) {
		t.Errorf("credentials after clear = %+v, want empty", got)
	}
}
