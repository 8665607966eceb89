// Package sensor tracks which sensors this device supports and which ones the
// user has granted. It plays the part of the operating system's health
// permission store for the SDK client.
package sensor

import (
	"context"
	"fmt"
	"slices"

	"github.com/garrettladley/sensorlink/internal/db"
	"github.com/garrettladley/sensorlink/internal/sdk"
)

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

type Registry struct {
	q         db.Querier
	supported []sdk.Sensor
}

func NewRegistry(q db.Querier, supported []sdk.Sensor) *Registry {
	return &Registry{q: q, supported: slices.Clone(supported)}
}

func (r *Registry) Supported() []sdk.Sensor {
	return slices.Clone(r.supported)
}

func (r *Registry) Permissions(ctx context.Context) (map[sdk.Sensor]Permission, error) {
	rows, err := r.q.ListSensorPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor permissions: %w", err)
	}

	perms := make(map[sdk.Sensor]Permission, len(rows))
	for _, row := range rows {
		perms[sdk.Sensor(row.Sensor)] = Permission(row.Permission)
	}
	return perms, nil
}

// Status aggregates the permission state of sensors. Unsupported beats
// denied, denied beats undecided.
func (r *Registry) Status(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	if r.anyUnsupported(sensors) {
		return sdk.SensorStatusUnavailable, nil
	}

	perms, err := r.Permissions(ctx)
	if err != nil {
		return sdk.SensorStatusPending, err
	}

	return aggregate(sensors, perms), nil
}

// Enable grants every requested sensor. Nothing is recorded when any of them
// is unsupported.
func (r *Registry) Enable(ctx context.Context, sensors []sdk.Sensor) (sdk.SensorStatus, error) {
	if r.anyUnsupported(sensors) {
		return sdk.SensorStatusUnavailable, nil
	}

	for _, s := range sensors {
		if err := r.q.UpsertSensorPermission(ctx, string(s), string(PermissionGranted)); err != nil {
			return sdk.SensorStatusPending, fmt.Errorf("failed to grant %s: %w", s, err)
		}
	}

	return r.Status(ctx, sensors)
}

func (r *Registry) Revoke(ctx context.Context, sensors []sdk.Sensor) error {
	for _, s := range sensors {
		if err := r.q.UpsertSensorPermission(ctx, string(s), string(PermissionDenied)); err != nil {
			return fmt.Errorf("failed to revoke %s: %w", s, err)
		}
	}
	return nil
}

// Reset forgets every decision, returning all sensors to pending.
func (r *Registry) Reset(ctx context.Context) error {
	if err := r.q.DeleteSensorPermissions(ctx); err != nil {
		return fmt.Errorf("failed to reset sensor permissions: %w", err)
	}
	return nil
}

func (r *Registry) anyUnsupported(sensors []sdk.Sensor) bool {
	for _, s := range sensors {
		if !slices.Contains(r.supported, s) {
			return true
		}
	}
	return false
}

func aggregate(sensors []sdk.Sensor, perms map[sdk.Sensor]Permission) sdk.SensorStatus {
	if len(sensors) == 0 {
		return sdk.SensorStatusPending
	}

	granted := 0
	for _, s := range sensors {
		switch perms[s] {
		case PermissionDenied:
			return sdk.SensorStatusDisabled
		case PermissionGranted:
			granted++
		}
	}

	if granted == len(sensors) {
		return sdk.SensorStatusEnabled
	}
	return sdk.SensorStatusPending
}
