package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Garden palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorLeaf   = lipgloss.Color("#b8bb26")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleLeaf   = lipgloss.NewStyle().Foreground(ColorLeaf)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors a client, quote, contract or visit status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "active", "accepted", "completed":
		return StyleGreen
	case "pending", "scheduled", "prospect":
		return StyleBlue
	case "sent", "in_progress", "rescheduled", "suspended":
		return StyleYellow
	case "discarded", "cancelled", "inactive":
		return StyleRed
	default:
		return StyleDim
	}
}

// Status renders a status word in its color, with underscores as spaces.
func Status(status string) string {
	return StatusStyle(status).Render(strings.ReplaceAll(status, "_", " "))
}

// Header renders an uppercase section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
