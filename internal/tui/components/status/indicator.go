package status

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/tui/theme"
)

const statusDot = "●"

type Auth struct {
	Checked       bool
	Authenticated bool
	// Failed marks a check that errored before an answer arrived.
	Failed bool
}

func (a Auth) Render() string {
	if a.Failed {
		return dot(theme.ColorWarning, "unknown")
	}
	if !a.Checked {
		return dot(theme.ColorBgLight, "checking...")
	}

	if a.Authenticated {
		return dot(theme.ColorSuccess, "authenticated")
	}

	return dot(theme.ColorError, "not authenticated")
}

type Sensors struct {
	Checked bool
	Status  sdk.SensorStatus
}

func (s Sensors) Render() string {
	if !s.Checked {
		return dot(theme.ColorBgLight, "checking...")
	}

	return dot(sensorColor(s.Status), s.Status.String())
}

func sensorColor(s sdk.SensorStatus) color.Color {
	switch s {
	case sdk.SensorStatusEnabled:
		return theme.ColorSuccess
	case sdk.SensorStatusPending:
		return theme.ColorWarning
	case sdk.SensorStatusDisabled:
		return theme.ColorError
	default:
		return theme.ColorMuted
	}
}

func dot(c color.Color, label string) string {
	return lipgloss.NewStyle().
		Foreground(c).
		Render(statusDot + " " + label)
}
