package home

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/tui/components/button"
	"github.com/garrettladley/sensorlink/internal/tui/components/field"
	"github.com/garrettladley/sensorlink/internal/tui/components/status"
	"github.com/garrettladley/sensorlink/internal/tui/theme"
)

const setupPrompt = "Sensors are awaiting setup. Finish it in app settings, then check again."

var fieldLabels = map[string]string{
	credentials.KeyAppID:     "App ID",
	credentials.KeyAppSecret: "App Secret",
	credentials.KeyUserID:    "User ID",
}

var buttonLabels = [actionCount]struct {
	label    string
	shortcut string
}{
	ActionAuthenticate:  {label: "Authenticate", shortcut: "ctrl+a"},
	ActionCheckSensors:  {label: "Check Sensors", shortcut: "ctrl+k"},
	ActionEnableSensors: {label: "Enable Sensors", shortcut: "ctrl+e"},
	ActionOpenSettings:  {label: "Open Settings", shortcut: "ctrl+o"},
}

func Fields(s State) []field.Field {
	fields := make([]field.Field, 0, fieldCount)
	for i, key := range credentials.Keys {
		fields = append(fields, field.Field{
			Label:   fieldLabels[key],
			Value:   s.Credentials.Get(key),
			Focused: s.Focus == i,
			Masked:  key == credentials.KeyAppSecret,
		})
	}
	return fields
}

func Buttons(s State) []button.Button {
	buttons := make([]button.Button, 0, actionCount)
	for a := range actionCount {
		buttons = append(buttons, button.Button{
			Label:    buttonLabels[a].label,
			Shortcut: buttonLabels[a].shortcut,
			Focused:  s.Focus == fieldCount+int(a),
			Disabled: !s.Ready() || (a == ActionEnableSensors && !s.SensorStatus.CanEnable()),
			Pending:  s.InFlight(a),
		})
	}
	return buttons
}

func View(t theme.Theme, s State, env sdk.Environment, width, height int) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		t.Title().Render("sensorlink"),
		t.Hint().Render("  "+env.String()),
	)

	rows := []string{title, ""}
	for _, f := range Fields(s) {
		rows = append(rows, f.Render(), "")
	}

	rows = append(rows,
		statusRow(t, "Auth", status.Auth{Checked: s.AuthChecked, Authenticated: s.Authenticated, Failed: s.AuthErr != nil}.Render()),
		statusRow(t, "Sensors", status.Sensors{Checked: s.SensorChecked, Status: s.SensorStatus}.Render()),
		"",
	)

	rendered := make([]string, 0, actionCount*2)
	for i, b := range Buttons(s) {
		if i > 0 {
			rendered = append(rendered, "  ")
		}
		rendered = append(rendered, b.Render())
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...), "")

	switch {
	case s.Phase == PhaseFailed:
		rows = append(rows, t.Notice().Render("SDK configuration failed: "+s.ConfigureErr.Error()))
		rows = append(rows, t.Hint().Render("Restart sensorlink to try again."))
	case s.Phase != PhaseReady:
		rows = append(rows, t.Hint().Render("Connecting..."))
	case s.AwaitingSetup():
		rows = append(rows, t.Prompt().Render(setupPrompt))
	}
	if notice := s.Notice(); notice != "" {
		rows = append(rows, t.Notice().Render(notice))
	}

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func statusRow(t theme.Theme, label string, indicator string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		t.Hint().Width(12).Render(label),
		indicator,
	)
}
