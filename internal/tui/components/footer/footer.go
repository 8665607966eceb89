package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/tui/theme"
)

var hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

type Footer struct {
	hints   []string
	width   int
	padding int
}

func New(width int, hints ...string) Footer {
	return Footer{
		hints:   hints,
		width:   width,
		padding: 2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()
	rightContent := hintStyle.Render(strings.Join(f.hints, "  ·  "))

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + rightContent)
}
