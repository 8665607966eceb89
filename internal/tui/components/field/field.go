package field

import (
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/tui/theme"
)

const (
	labelWidth = 12
	inputWidth = credentials.MaxLength + 2
	cursor     = "▏"
	maskRune   = "•"
)

// Field is a single line text input bound to one credential.
type Field struct {
	Label   string
	Value   string
	Focused bool
	Masked  bool
}

// Insert appends text, dropping control characters and anything past the
// credential length limit.
func (f Field) Insert(text string) Field {
	text = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
	f.Value = credentials.Clamp(f.Value + text)
	return f
}

func (f Field) Backspace() Field {
	if f.Value == "" {
		return f
	}
	_, size := utf8.DecodeLastRuneInString(f.Value)
	f.Value = f.Value[:len(f.Value)-size]
	return f
}

func (f Field) Clear() Field {
	f.Value = ""
	return f
}

func (f Field) Render() string {
	labelStyle := lipgloss.NewStyle().
		Width(labelWidth).
		Foreground(theme.ColorDim)

	boxStyle := lipgloss.NewStyle().
		Width(inputWidth).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(theme.ColorBgLight)

	if f.Focused {
		labelStyle = labelStyle.Foreground(theme.ColorAccent).Bold(true)
		boxStyle = boxStyle.BorderForeground(theme.ColorAccent)
	}

	value := f.Value
	if f.Masked {
		value = strings.Repeat(maskRune, utf8.RuneCountInString(value))
	}
	if f.Focused {
		value += cursor
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		labelStyle.Render(f.Label),
		boxStyle.Render(value),
	)
}
