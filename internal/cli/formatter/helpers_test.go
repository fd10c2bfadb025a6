package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "-"},
		{"tuesday", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), "Tue 04 Mar 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
	assert.Equal(t, "-", DatePtr(nil))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdef12", ShortID("abcdef12-3456-7890"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestField_EmptyValue(t *testing.T) {
	assert.Equal(t, "Phone: -", stripANSI(Field("Phone", "")))
}

func TestStatus_ReplacesUnderscore(t *testing.T) {
	assert.Equal(t, "in progress", stripANSI(Status("in_progress")))
}

func TestHeader_Underlined(t *testing.T) {
	out := stripANSI(Header("plans"))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "PLANS", lines[0])
	assert.Equal(t, "─────", lines[1])
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a1", StyleBold.Render("Lawn care")}, {"b22", "Beds"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "ID   NAME", lines[0])
	assert.Equal(t, "───  ─────────", lines[1])
	assert.Equal(t, "a1   Lawn care", lines[2])
	assert.Equal(t, "b22  Beds", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderBox_Title(t *testing.T) {
	out := stripANSI(RenderBox("route", "body"))
	assert.Contains(t, out, "ROUTE")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}
