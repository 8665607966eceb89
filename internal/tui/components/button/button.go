package button

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/tui/theme"
)

type Button struct {
	Label    string
	Shortcut string
	Focused  bool
	Disabled bool
	Pending  bool
}

// Interactive reports whether activating the button does anything.
func (b Button) Interactive() bool {
	return !b.Disabled && !b.Pending
}

func (b Button) Render() string {
	style := lipgloss.NewStyle().Padding(0, 2)

	label := b.Label
	switch {
	case b.Pending:
		label += "…"
		style = style.Foreground(theme.ColorWarning).Background(theme.ColorBgLight)
	case b.Disabled:
		style = style.Foreground(theme.ColorMuted).Background(theme.ColorBgDark).Faint(true)
	case b.Focused:
		style = style.Foreground(theme.ColorBgDark).Background(theme.ColorAccent).Bold(true)
	default:
		style = style.Foreground(theme.ColorWhite).Background(theme.ColorBgLight)
	}

	shortcut := lipgloss.NewStyle().Foreground(theme.ColorDim).Render(b.Shortcut)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		style.Render(label),
		shortcut,
	)
}
