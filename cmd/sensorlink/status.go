package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/sensorlink/internal/sdk"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print auth and sensor status",
		Long:  "Configures the SDK, then checks authentication and sensor status without opening the TUI.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			report, err := checkStatus(ctx, a.client, a.cfg.Environment, a.cfg.Sensors, a.cfg.CallTimeout)
			if err != nil {
				return err
			}

			fmt.Printf("environment:   %s\n", a.cfg.Environment)
			fmt.Printf("authenticated: %t\n", report.authenticated)
			fmt.Printf("sensors:       %s (%v)\n", report.status, sdk.SensorNames(a.cfg.Sensors))
			return nil
		},
	}
}

type statusReport struct {
	authenticated bool
	status        sdk.SensorStatus
}

// checkStatus mirrors the screen's startup: configure first, then both checks
// concurrently. A configure failure skips the checks.
func checkStatus(
	ctx context.Context,
	client sdk.Client,
	env sdk.Environment,
	sensors []sdk.Sensor,
	timeout time.Duration,
) (statusReport, error) {
	configureCtx, cancel := context.WithTimeout(ctx, timeout)
	err := client.Configure(configureCtx, sdk.Settings{Environment: env})
	cancel()
	if err != nil {
		return statusReport{}, fmt.Errorf("failed to configure sdk: %w", err)
	}

	var report statusReport

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		authenticated, err := client.IsAuthenticated(ctx)
		if err != nil {
			return fmt.Errorf("failed to check authentication: %w", err)
		}
		report.authenticated = authenticated
		return nil
	})
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		status, err := client.SensorStatus(ctx, sensors)
		if err != nil {
			return fmt.Errorf("failed to check sensors: %w", err)
		}
		report.status = status
		return nil
	})

	if err := g.Wait(); err != nil {
		return statusReport{}, err
	}
	return report, nil
}
