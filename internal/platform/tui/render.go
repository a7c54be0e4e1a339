package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-runner/internal/core"
)

// palette maps core colours to terminal colours. The matrix colours are hex;
// lipgloss degrades them to the nearest ANSI colour on limited terminals.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "#00ff41",
	core.ColorBrightYellow:  "#ffff00",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "#ff0066",
	core.ColorBrightCyan:    "#00aaff",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "#ffcc00",
	core.ColorGray:          "240",
	core.ColorDarkGreen:     "22",
}

var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, fg := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(fg)
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := colorStyles[c]; ok {
		return st
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen turns a Screen into a styled string. Runs of one colour share
// an escape sequence and blank runs are written unstyled.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	var runColor core.Color
	flush := func() {
		if len(run) == 0 {
			return
		}
		text := string(run)
		if runColor == core.ColorDefault || strings.TrimSpace(text) == "" {
			sb.WriteString(text)
		} else {
			sb.WriteString(styleFor(runColor).Render(text))
		}
		run = run[:0]
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
			}
			run = append(run, cell.Rune)
		}
		flush()
	}
	return sb.String()
}
