// Package sdktest provides a scripted sdk.Client that records every call.
package sdktest

import (
	"context"
	"slices"
	"sync"

	"github.com/garrettladley/sensorlink/internal/sdk"
)

type Op string

const (
	OpConfigure       Op = "configure"
	OpIsAuthenticated Op = "is_authenticated"
	OpAuthenticate    Op = "authenticate"
	OpSensorStatus    Op = "sensor_status"
	OpEnableSensors   Op = "enable_sensors"
	OpOpenAppSettings Op = "open_app_settings"
)

type Call struct {
	Op       Op
	Settings sdk.Settings
	Args     []string
	Sensors  []sdk.Sensor
}

var _ sdk.Client = (*Client)(nil)

// Client returns the configured results. Fields may be changed between calls
// but not while a call is running.
type Client struct {
	ConfigureErr error

	Authenticated      bool
	IsAuthenticatedErr error

	AuthenticateResult bool
	AuthenticateErr    error

	Status    sdk.SensorStatus
	StatusErr error

	EnableResult sdk.SensorStatus
	EnableErr    error

	mu    sync.Mutex
	calls []Call
}

func (c *Client) Configure(_ context.Context, settings sdk.Settings) error {
	c.record(Call{Op: OpConfigure, Settings: settings})
	return c.ConfigureErr
}

func (c *Client) IsAuthenticated(_ context.Context) (bool, error) {
	c.record(Call{Op: OpIsAuthenticated})
	if c.IsAuthenticatedErr != nil {
		return false, c.IsAuthenticatedErr
	}
	return c.Authenticated, nil
}

func (c *Client) Authenticate(_ context.Context, appID, appSecret, userID string) (bool, error) {
	c.record(Call{Op: OpAuthenticate, Args: []string{appID, appSecret, userID}})
	if c.AuthenticateErr != nil {
		return false, c.AuthenticateErr
	}
	return c.AuthenticateResult, nil
}

func (c *Client) SensorStatus(_ context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	c.record(Call{Op: OpSensorStatus, Sensors: slices.Clone(sensors)})
	if c.StatusErr != nil {
		return sdk.SensorStatusPending, c.StatusErr
	}
	return c.Status, nil
}

func (c *Client) EnableSensors(_ context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	c.record(Call{Op: OpEnableSensors, Sensors: slices.Clone(sensors)})
	if c.EnableErr != nil {
		return sdk.SensorStatusPending, c.EnableErr
	}
	return c.EnableResult, nil
}

func (c *Client) OpenAppSettings(_ context.Context) {
	c.record(Call{Op: OpOpenAppSettings})
}

func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

func (c *Client) Count(op Op) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

func (c *Client) record(call Call) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}
