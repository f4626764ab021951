// Package screens holds what the TUI screens share: their domain
// dependencies and a few common renderings.
package screens

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/narrative"
	"github.com/multikids/portage/internal/ui/theme"
)

// Deps are the services the screens work with.
type Deps struct {
	Clinic    *clinic.Service
	Narrative *narrative.Service
	Now       func() time.Time

	// ExportDir is where reports saved from the TUI are written. Empty
	// means the working directory.
	ExportDir string
}

// Time returns the current time from Now, or the wall clock.
func (d Deps) Time() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Loading renders a centered loading line.
func Loading(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render("\n\n  " + text)
}

// Empty renders a centered placeholder for an empty list.
func Empty(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render("\n\n  " + text)
}

// Error renders a centered error message.
func Error(width int, err string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\nErro: %s", err))
}

// DateLayout is the date format shown on screen.
const DateLayout = "02/01/2006"
