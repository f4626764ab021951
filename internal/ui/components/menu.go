package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

// MenuItem is one selectable line. Hint is drawn dimmed after the label.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list driven by arrow keys or j/k. Movement wraps
// around and skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index in direction dir, or Selected when
// nothing else is enabled.
func (m Menu) step(dir int) int {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return m.Selected
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.Selected = m.step(-1)
	case "down", "j", "tab":
		m.Selected = m.step(1)
	case "home", "g":
		m.Selected = -1
		m.Selected = m.step(1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.Selected = m.step(-1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	cursor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	plain := lipgloss.NewStyle().Foreground(theme.Text)
	off := lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true)
	hint := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(cursor.Render("  ▸ " + it.Label))
		case it.Disabled:
			b.WriteString(off.Render("    " + it.Label))
		default:
			b.WriteString(plain.Render("    " + it.Label))
		}
		if it.Hint != "" {
			b.WriteString(hint.Render("  " + it.Hint))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
