// Package style holds the colors and glyphs shared by every terminal writer of the tool.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette.
var (
	Accent  = lipgloss.Color("#E8453C")
	Muted   = lipgloss.Color("#6B7280")
	Success = lipgloss.Color("#16A34A")
	Failure = lipgloss.Color("#DC2626")
	Caution = lipgloss.Color("#D97706")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "•"
)

// Term converts a palette color for use with a termenv output.
func Term(c lipgloss.Color) termenv.Color {
	return termenv.RGBColor(string(c))
}
