package main

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/sdk/sdktest"
)

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	client := &sdktest.Client{Authenticated: true, Status: sdk.SensorStatusEnabled}

	report, err := checkStatus(t.Context(), client, sdk.EnvironmentSandbox, sdk.DefaultSensors, time.Second)
	if err != nil {
		t.Fatalf("checkStatus() error = %v", err)
	}

	want := statusReport{authenticated: true, status: sdk.SensorStatusEnabled}
	if diff := cmp.Diff(want, report, cmp.AllowUnexported(statusReport{})); diff != "" {
		t.Errorf("checkStatus() mismatch (-want +got):\n%s", diff)
	}

	calls := client.Calls()
	if len(calls) != 3 || calls[0].Op != sdktest.OpConfigure {
		t.Fatalf("calls = %+v, want configure then both checks", calls)
	}
	if calls[0].Settings.Environment != sdk.EnvironmentSandbox {
		t.Errorf("configured environment = %q, want %q", calls[0].Settings.Environment, sdk.EnvironmentSandbox)
	}
}

func TestCheckStatusConfigureError(t *testing.T) {
	t.Parallel()

	configureErr := errors.New("bad environment")
	client := &sdktest.Client{ConfigureErr: configureErr}

	_, err := checkStatus(t.Context(), client, sdk.EnvironmentSandbox, sdk.DefaultSensors, time.Second)
	if !errors.Is(err, configureErr) {
		t.Fatalf("checkStatus() error = %v, want %v", err, configureErr)
	}

	for _, op := range []sdktest.Op{sdktest.OpIsAuthenticated, sdktest.OpSensorStatus} {
		if n := client.Count(op); n != 0 {
			t.Errorf("%s called %d times after configure failed", op, n)
		}
	}
}

func TestCheckStatusCheckError(t *testing.T) {
	t.Parallel()

	statusErr := errors.New("registry offline")
	client := &sdktest.Client{Authenticated: true, StatusErr: statusErr}

	if _, err := checkStatus(t.Context(), client, sdk.EnvironmentSandbox, sdk.DefaultSensors, time.Second); !errors.Is(err, statusErr) {
		t.Fatalf("checkStatus() error = %v, want %v", err, statusErr)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":           "",
		"abc":        "•••",
		"secret-key": "••••••-key",
	}
	for in, want := range tests {
		if got := mask(in); got != want {
			t.Errorf("mask(%q) = %q, want %q", in, got, want)
		}
	}
}
