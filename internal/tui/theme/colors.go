package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent  = lipgloss.Color("#5B8DEF") // focus, highlights, call to action
	ColorSuccess = lipgloss.Color("#16EC06") // authenticated, sensors enabled
	ColorWarning = lipgloss.Color("#FFDE00") // pending, awaiting setup
	ColorError   = lipgloss.Color("#FF0026") // failures, denied
	ColorMuted   = lipgloss.Color("#7BA1BB") // unavailable, disabled triggers
)

var (
	ColorBgDark  = lipgloss.Color("#101518")
	ColorBgLight = lipgloss.Color("#283339")
)
