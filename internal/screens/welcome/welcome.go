// Package welcome is the splash shown once at startup. It lists the five
// Portage areas one by one under the banner and waits for a key.
package welcome

import (
	"image/color"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/ui/theme"
)

const bannerArt = `██████╗  ██████╗ ██████╗ ████████╗ █████╗  ██████╗ ███████╗
██╔══██╗██╔═══██╗██╔══██╗╚══██╔══╝██╔══██╗██╔════╝ ██╔════╝
██████╔╝██║   ██║██████╔╝   ██║   ███████║██║  ███╗█████╗
██╔═══╝ ██║   ██║██╔══██╗   ██║   ██╔══██║██║   ██║██╔══╝
██║     ╚██████╔╝██║  ██║   ██║   ██║  ██║╚██████╔╝███████╗
╚═╝      ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

const (
	bannerCompact = "P O R T A G E"
	bannerWidth   = 64

	frameInterval = 100 * time.Millisecond
	framesPerArea = 2
)

var areaColors = []color.Color{theme.Primary, theme.Secondary, theme.Accent, theme.Success, theme.Error}

// hintFrame is the frame at which every area is listed and the splash
// stops animating.
var hintFrame = framesPerArea * (len(catalog.Categories()) + 1)

type frameMsg struct{}

type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns the splash. next builds the screen that replaces it.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done || w.frame >= hintFrame {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Replace(w.next())
	}
	return w, nil
}

// Banner renders the logo, or the spaced-out name when the terminal is
// narrower than the art.
func Banner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := []string{
		Banner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Inventário Portage Operacionalizado"),
		"",
	}

	areas := catalog.Categories()
	for i, c := range areas[:min(w.frame/framesPerArea, len(areas))] {
		dot := lipgloss.NewStyle().Foreground(areaColors[i%len(areaColors)]).Render("●")
		lines = append(lines, dot+" "+theme.Body.Render(string(c)))
	}

	if w.frame >= hintFrame {
		lines = append(lines, "", theme.Hint.Render("pressione qualquer tecla para continuar"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
