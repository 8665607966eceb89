//go:build !release

package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/tui/theme"
	"github.com/garrettladley/sensorlink/internal/version"
)

var devVersionStyle = lipgloss.NewStyle().Foreground(theme.ColorWarning)

func (f Footer) leftContent() string {
	return devVersionStyle.Render(version.Get() + " (dev)")
}
