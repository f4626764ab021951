package components

import (
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked panels so
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

// Frame centers content in a rounded border filling the given area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

// Panel wraps content in a titled rounded-border box at the given content width.
func Panel(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Heading.Render(title) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Padding(0, 1).
		Render(body)
}
