// Package tui provides the Bubble Tea front end for the campus dex: the
// overworld and puzzle views, the records browser and the SSH server.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/campus-dex/internal/core"
)

// ansiCodes are the 256-color codes behind each core.Color.
var ansiCodes = map[core.Color]string{
	core.ColorWhite:         "7",
	core.ColorBrightWhite:   "15",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "238",
	core.ColorGreen:         "2",
	core.ColorCyan:          "6",
	core.ColorBrightCyan:    "14",
	core.ColorRed:           "1",
	core.ColorBrightRed:     "9",
	core.ColorOrange:        "208",
	core.ColorBrightYellow:  "11",
	core.ColorBrightGreen:   "10",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
}

// palette maps core.Color to styles bound to one lipgloss renderer. SSH
// sessions get their own so the client's color profile is used.
type palette map[core.Color]lipgloss.Style

func newPalette(r *lipgloss.Renderer) palette {
	p := palette{core.ColorDefault: r.NewStyle()}
	for c, code := range ansiCodes {
		p[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPalette = newPalette(lipgloss.DefaultRenderer())

func (p palette) style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return p[core.ColorDefault]
}

// Shared styles for the chrome around the screen buffer.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderScreen converts a Screen buffer to a styled string using the
// process's own terminal profile.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.render(s)
}

// render joins the rows, styling each run of same-colored cells once.
func (p palette) render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
