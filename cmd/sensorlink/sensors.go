//go:build !release

package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/sensor"
)

func sensorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "Simulate the device's sensor permission prompts",
		Long:  "Grants, revokes or resets local sensor permissions. With no sensor arguments the configured sensors are used.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show each sensor's permission",
		RunE: withRegistry(func(ctx context.Context, r *sensor.Registry, _ []sdk.Sensor) error {
			perms, err := r.Permissions(ctx)
			if err != nil {
				return err
			}
			for _, s := range sdk.AllSensors {
				state := "not asked"
				if p, ok := perms[s]; ok {
					state = string(p)
				}
				if !slices.Contains(r.Supported(), s) {
					state = "unsupported"
				}
				fmt.Printf("%-12s %s\n", s, state)
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "grant [sensor...]",
		Short: "Grant permission for sensors",
		RunE: withRegistry(func(ctx context.Context, r *sensor.Registry, sensors []sdk.Sensor) error {
			status, err := r.Enable(ctx, sensors)
			if err != nil {
				return err
			}
			fmt.Printf("%v: %s\n", sdk.SensorNames(sensors), status)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke [sensor...]",
		Short: "Deny permission for sensors",
		RunE: withRegistry(func(ctx context.Context, r *sensor.Registry, sensors []sdk.Sensor) error {
			if err := r.Revoke(ctx, sensors); err != nil {
				return err
			}
			fmt.Printf("%v: denied\n", sdk.SensorNames(sensors))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget every permission answer",
		RunE: withRegistry(func(ctx context.Context, r *sensor.Registry, _ []sdk.Sensor) error {
			if err := r.Reset(ctx); err != nil {
				return err
			}
			fmt.Println("Sensor permissions reset.")
			return nil
		}),
	})

	return cmd
}

func withRegistry(fn func(ctx context.Context, r *sensor.Registry, sensors []sdk.Sensor) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		sensors := a.cfg.Sensors
		if len(args) > 0 {
			sensors = make([]sdk.Sensor, 0, len(args))
			for _, arg := range args {
				s, err := sdk.ParseSensor(arg)
				if err != nil {
					return err
				}
				sensors = append(sensors, s)
			}
		}

		return fn(ctx, a.registry, sensors)
	}
}
