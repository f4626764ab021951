// Package layout draws the frame around every screen: a header with the
// app name, screen title and therapist, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

// Smallest terminal the questionnaire fits in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal muito pequeno!\n\nAumente para pelo menos\n%d x %d\n\nAtual: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(text))
}

// bar is the rounded card both header and footer sit in.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader centers title between the app name and the therapist.
func RenderHeader(title, therapist string, width int) string {
	inner := max(width-4, 0)
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  PORTAGE")
	who := lipgloss.NewStyle().Foreground(theme.Secondary).Render(therapist)

	side := max(lipgloss.Width(name), lipgloss.Width(who))
	mid := max(inner-2*side, lipgloss.Width(title))
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, name),
		lipgloss.PlaceHorizontal(mid, lipgloss.Center, theme.Body.Render(title)),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, who),
	)
	return bar(width).Render(row)
}

// RenderFooter lists hints left to right and drops the ones that do not
// fit, leaving an ellipsis.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(width-6, 0)
	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		part := key.Render(h.Key) + " " + desc.Render(h.Description)
		if i > 0 {
			part = "   " + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > room {
			b.WriteString(desc.Render("   …"))
			break
		}
		b.WriteString(part)
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content so
// the footer stays on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
