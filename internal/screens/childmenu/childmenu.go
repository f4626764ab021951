// Package childmenu offers the actions available for one child.
package childmenu

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/screens/childform"
	"github.com/multikids/portage/internal/screens/history"
	"github.com/multikids/portage/internal/screens/questionnaire"
	"github.com/multikids/portage/internal/screens/reportview"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

type loadedMsg struct {
	child child.Child
	err   error
}

type deletedMsg struct {
	err error
}

// ChildMenuScreen shows a child's details and the actions on them.
type ChildMenuScreen struct {
	deps       screens.Deps
	childID    string
	child      child.Child
	menu       components.Menu
	confirming bool
	loaded     bool
	errMsg     string
}

var (
	_ screen.Screen          = (*ChildMenuScreen)(nil)
	_ screen.KeyHintProvider = (*ChildMenuScreen)(nil)
	_ screen.Resumer         = (*ChildMenuScreen)(nil)
)

// New creates the action menu for a child.
func New(deps screens.Deps, childID string) *ChildMenuScreen {
	s := &ChildMenuScreen{deps: deps, childID: childID}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *ChildMenuScreen) items() []components.MenuItem {
	deps, id := s.deps, s.childID
	return []components.MenuItem{
		{Label: "Nova avaliação", Action: func() tea.Cmd { return router.Push(questionnaire.New(deps, id)) }},
		{Label: "Relatório", Action: func() tea.Cmd { return router.Push(reportview.New(deps, id)) }},
		{Label: "Histórico", Action: func() tea.Cmd { return router.Push(history.New(deps, id)) }},
		{Label: "Editar dados", Action: func() tea.Cmd { return router.Push(childform.New(deps, id)) }},
		{Label: "Excluir", Action: func() tea.Cmd {
			s.confirming = true
			return nil
		}},
		{Label: "Voltar", Action: router.Pop},
	}
}

func (s *ChildMenuScreen) Init() tea.Cmd {
	return s.Load
}

// Resume reloads the child after an edit or a new evaluation.
func (s *ChildMenuScreen) Resume() tea.Cmd {
	return s.Load
}

// Load reads the child.
func (s *ChildMenuScreen) Load() tea.Msg {
	c, err := s.deps.Clinic.Child(context.Background(), s.childID)
	return loadedMsg{child: c, err: err}
}

func (s *ChildMenuScreen) Title() string {
	if s.child.Name != "" {
		return s.child.Name
	}
	return "Criança"
}

func (s *ChildMenuScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "s", Description: "Confirmar"},
			{Key: "n", Description: "Cancelar"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Abrir"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *ChildMenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.child = msg.child
		return s, nil

	case deletedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		return s, router.Pop()

	case tea.KeyMsg:
		if s.confirming {
			switch msg.String() {
			case "s", "y":
				s.confirming = false
				svc, id := s.deps.Clinic, s.childID
				return s, func() tea.Msg {
					return deletedMsg{err: svc.DeleteChild(context.Background(), id)}
				}
			case "n", "esc":
				s.confirming = false
			}
			return s, nil
		}
		if msg.String() == "esc" {
			return s, router.Pop()
		}
		if !s.loaded || s.errMsg != "" {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ChildMenuScreen) View(width, height int) string {
	if s.errMsg != "" {
		return screens.Error(width, s.errMsg)
	}
	if !s.loaded {
		return screens.Loading(width, "Carregando...")
	}

	cw := components.ContentWidth(width)
	c := s.child

	info := fmt.Sprintf("Idade: %d anos\nAvaliações: %d", c.Age, len(c.Evaluations))
	if last, ok := c.LastEvaluation(); ok {
		info += fmt.Sprintf("\nÚltima avaliação: %s (%s)", last.Date.Format(screens.DateLayout), last.Category)
	}
	if c.Notes != "" {
		info += "\n" + theme.Hint.Width(cw-4).Render("Observações: "+c.Notes)
	}

	var actions string
	if s.confirming {
		actions = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Width(cw - 4).Render(
			fmt.Sprintf("Excluir %s e todas as avaliações? (s/n)", c.Name))
	} else {
		actions = strings.TrimRight(s.menu.View(), "\n")
	}

	content := strings.Join([]string{
		components.Panel(c.Name, info, cw),
		components.Panel("Ações", actions, cw),
	}, "\n\n")
	return components.Frame(content, width, height)
}
