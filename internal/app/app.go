// Package app is the root Bubble Tea model: header, footer and the screen stack.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/screens/home"
	"github.com/multikids/portage/internal/screens/therapist"
	"github.com/multikids/portage/internal/screens/welcome"
	"github.com/multikids/portage/internal/ui/layout"
)

type therapistLoadedMsg struct {
	name string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps      screens.Deps
	router    *router.Router
	therapist string
	width     int
	height    int
}

// newAppModel creates an AppModel starting at the given screen.
func newAppModel(deps screens.Deps, start screen.Screen) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(start),
	}
}

func (m AppModel) loadTherapist() tea.Msg {
	name, _ := m.deps.Clinic.TherapistName(context.Background())
	return therapistLoadedMsg{name: name}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadTherapist)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case therapistLoadedMsg:
		m.therapist = msg.name
		return m, nil

	case therapist.NameChangedMsg:
		m.therapist = msg.Name
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Sair"})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame, or nothing until the terminal size is known.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.therapist, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program at the welcome screen.
func Run(deps screens.Deps) error {
	start := welcome.New(func() screen.Screen { return home.New(deps) })
	p := tea.NewProgram(newAppModel(deps, start))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erro ao executar o programa:", err)
		return err
	}
	return nil
}
