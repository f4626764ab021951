package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

// ProgressBar is a one-line bar with an optional label before it and the
// percentage after it. Target, when set, draws a tick where the expected
// score sits so a reader can see the gap at a glance.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	Target      float64 // 0..1, zero hides the tick
	ShowPercent bool
	Width       int
	Fill        color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width, Fill: theme.Secondary}
}

// cells converts a 0..1 ratio into a cell count within n.
func cells(ratio float64, n int) int {
	return min(max(int(ratio*float64(n)), 0), n)
}

func (p ProgressBar) View() string {
	var label, pct string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		pct = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %5.1f%%", p.Percent*100))
	}

	n := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct), 4)
	filled := cells(p.Percent, n)
	tick := -1
	if p.Target > 0 {
		tick = min(cells(p.Target, n), n-1)
	}

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	on := lipgloss.NewStyle().Background(fill)
	off := lipgloss.NewStyle().Background(theme.Border)
	mark := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(label)
	for i := range n {
		style := off
		if i < filled {
			style = on
		}
		if i == tick {
			b.WriteString(mark.Inherit(style).Render("│"))
			continue
		}
		b.WriteString(style.Render(" "))
	}
	b.WriteString(pct)
	return b.String()
}
