// Package therapist edits the therapist name shown in headers and reports.
package therapist

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

type loadedMsg struct {
	name string
	err  error
}

type savedMsg struct {
	err error
}

// NameChangedMsg is broadcast after the therapist name is saved so the
// header can refresh.
type NameChangedMsg struct {
	Name string
}

// TherapistScreen edits the therapist name.
type TherapistScreen struct {
	deps   screens.Deps
	input  components.TextInput
	loaded bool
	errMsg string
}

var (
	_ screen.Screen          = (*TherapistScreen)(nil)
	_ screen.KeyHintProvider = (*TherapistScreen)(nil)
)

// New creates the therapist screen.
func New(deps screens.Deps) *TherapistScreen {
	s := &TherapistScreen{
		deps:  deps,
		input: components.NewTextInput("Nome", "Nome do terapeuta", false, 80),
	}
	s.input.Focus()
	return s
}

func (s *TherapistScreen) Init() tea.Cmd {
	return s.Load
}

// Load reads the stored name.
func (s *TherapistScreen) Load() tea.Msg {
	name, err := s.deps.Clinic.TherapistName(context.Background())
	return loadedMsg{name: name, err: err}
}

func (s *TherapistScreen) Title() string {
	return "Terapeuta"
}

func (s *TherapistScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Salvar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *TherapistScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.input.SetValue(msg.name)
		return s, nil

	case savedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		name := strings.TrimSpace(s.input.Value())
		return s, tea.Batch(
			func() tea.Msg { return NameChangedMsg{Name: name} },
			router.Pop(),
		)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "enter":
			if !s.loaded {
				return s, nil
			}
			svc, name := s.deps.Clinic, strings.TrimSpace(s.input.Value())
			return s, func() tea.Msg {
				return savedMsg{err: svc.SetTherapistName(context.Background(), name)}
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TherapistScreen) View(width, height int) string {
	if !s.loaded {
		return screens.Loading(width, "Carregando...")
	}
	body := s.input.View() + "\n\n" +
		theme.Hint.Render("O nome aparece no cabeçalho e nos relatórios. Deixe vazio para remover.")
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return components.Frame(components.Panel("Terapeuta", body, components.ContentWidth(width)), width, height)
}
