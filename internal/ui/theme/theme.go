// Package theme holds the palette and shared lipgloss styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/scoring"
)

var (
	Primary   = lipgloss.Color("#3498DB")
	Secondary = lipgloss.Color("#1ABC9C")
	Accent    = lipgloss.Color("#F39C12")
	Success   = lipgloss.Color("#27AE60")
	Error     = lipgloss.Color("#E74C3C")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// ClassColor is the tier color also used by the HTML and XLSX exports.
func ClassColor(c scoring.Class) color.Color {
	return lipgloss.Color(c.Color())
}

// Badge renders a classification label in its tier color.
func Badge(c scoring.Class) string {
	return lipgloss.NewStyle().Foreground(ClassColor(c)).Bold(true).Render(c.Label())
}

// Text styles.
var (
	Title   = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Heading = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Body    = lipgloss.NewStyle().Foreground(Text)
	Hint    = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

// Cursor and validation states.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = Body
	Valid      = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Invalid    = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Tabs and buttons share padding; the active variant is filled.
var (
	filled = lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)

	TabActive      = filled
	TabInactive    = lipgloss.NewStyle().Foreground(TextDim).Padding(0, 2)
	ButtonActive   = filled
	ButtonInactive = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)
