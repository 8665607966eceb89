package home

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
)

type CredentialsLoadedMsg struct {
	Credentials credentials.Credentials
}

type ConfiguredMsg struct {
	Err error
}

type AuthStatusMsg struct {
	Authenticated bool
	Err           error
}

type AuthenticatedMsg struct {
	Authenticated bool
	Err           error
}

type SensorStatusMsg struct {
	Action Action
	Status sdk.SensorStatus
	Err    error
}

type NoticeExpiredMsg struct {
	ID uint64
}

func LoadCredentialsCmd(ctx context.Context, store credentials.Store, logger *slog.Logger, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return CredentialsLoadedMsg{Credentials: credentials.Load(ctx, store, logger)}
	}
}

func ConfigureCmd(ctx context.Context, client sdk.Client, settings sdk.Settings, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return ConfiguredMsg{Err: client.Configure(ctx, settings)}
	}
}

func CheckAuthCmd(ctx context.Context, client sdk.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		authenticated, err := client.IsAuthenticated(ctx)
		return AuthStatusMsg{Authenticated: authenticated, Err: err}
	}
}

// AuthenticateCmd persists c before calling the client. Persistence is best
// effort and never blocks the call.
func AuthenticateCmd(
	ctx context.Context,
	client sdk.Client,
	store credentials.Store,
	logger *slog.Logger,
	c credentials.Credentials,
	timeout time.Duration,
) tea.Cmd {
	return func() tea.Msg {
		saveCtx, cancelSave := context.WithTimeout(ctx, timeout)
		credentials.Save(saveCtx, store, logger, c)
		cancelSave()

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		authenticated, err := client.Authenticate(ctx, c.AppID, c.AppSecret, c.UserID)
		return AuthenticatedMsg{Authenticated: authenticated, Err: err}
	}
}

func SensorStatusCmd(ctx context.Context, client sdk.Client, sensors []sdk.Sensor, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		status, err := client.SensorStatus(ctx, sensors)
		return SensorStatusMsg{Action: ActionCheckSensors, Status: status, Err: err}
	}
}

func EnableSensorsCmd(ctx context.Context, client sdk.Client, sensors []sdk.Sensor, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		status, err := client.EnableSensors(ctx, sensors)
		return SensorStatusMsg{Action: ActionEnableSensors, Status: status, Err: err}
	}
}

// OpenSettingsCmd produces no message.
func OpenSettingsCmd(ctx context.Context, client sdk.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		client.OpenAppSettings(ctx)
		return nil
	}
}

func ExpireNoticeCmd(id uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{ID: id}
	})
}
