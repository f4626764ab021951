package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

// Choice is a horizontal single-choice selector. Selected is -1 until the
// user picks an option.
type Choice struct {
	Options  []string
	Selected int
	cursor   int
}

// NewChoice creates a choice with nothing selected.
func NewChoice(options []string) Choice {
	return Choice{Options: options, Selected: -1}
}

// Update moves the cursor with left/right and selects with space or enter.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		if c.cursor > 0 {
			c.cursor--
		}
	case "right", "l":
		if c.cursor < len(c.Options)-1 {
			c.cursor++
		}
	case "space", "enter":
		c.Selected = c.cursor
	}
	return c, nil
}

// Select picks option i directly.
func (c *Choice) Select(i int) {
	if i < 0 || i >= len(c.Options) {
		return
	}
	c.Selected = i
	c.cursor = i
}

// View renders the options in one line. The cursor is only shown when focused.
func (c Choice) View(focused bool) string {
	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		switch {
		case i == c.Selected:
			style = style.Foreground(theme.Text).Background(theme.Primary).Bold(true)
		case focused && i == c.cursor:
			style = style.Foreground(theme.Primary).Underline(true)
		}
		parts[i] = style.Render(opt)
	}
	return strings.Join(parts, " ")
}
