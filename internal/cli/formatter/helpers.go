package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Date renders a calendar date as "Tue 04 Mar 2025". The zero time is "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon 02 Jan 2006")
}

func DatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return Date(*t)
}

// ShortID returns the first eight characters of an id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Field renders one "Label: value" line with a dim label.
func Field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return StyleDim.Render(label+":") + " " + value
}

// Check renders a checkbox mark.
func Check(on bool) string {
	if on {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}
