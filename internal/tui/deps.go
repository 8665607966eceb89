package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/tui/page/splash"
)

const (
	defaultCallTimeout    = 15 * time.Second
	defaultNoticeDuration = 6 * time.Second
)

type Deps struct {
	Ctx         context.Context
	Logger      *slog.Logger
	Client      sdk.Client
	Store       credentials.Store
	Environment sdk.Environment
	Sensors     []sdk.Sensor

	// CallTimeout bounds every store and client call.
	CallTimeout time.Duration
	// NoticeDuration is how long an error notice stays on screen.
	NoticeDuration time.Duration
	SplashDuration time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if len(d.Sensors) == 0 {
		d.Sensors = sdk.DefaultSensors
	}
	if d.CallTimeout <= 0 {
		d.CallTimeout = defaultCallTimeout
	}
	if d.NoticeDuration <= 0 {
		d.NoticeDuration = defaultNoticeDuration
	}
	if d.SplashDuration <= 0 {
		d.SplashDuration = splash.Duration
	}
	return d
}
