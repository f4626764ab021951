package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/screens/childform"
	"github.com/multikids/portage/internal/screens/childmenu"
	"github.com/multikids/portage/internal/screens/therapist"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

type loadedMsg struct {
	children  []child.Child
	stats     clinic.Stats
	therapist string
	err       error
}

// HomeScreen lists the registered children and the clinic totals.
type HomeScreen struct {
	deps      screens.Deps
	children  []child.Child
	stats     clinic.Stats
	therapist string
	menu      components.Menu
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
)

// New creates the home screen. Data is loaded by Init.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.Load
}

// Resume reloads the list when a screen above is popped.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Load
}

// Load reads the children and totals.
func (h *HomeScreen) Load() tea.Msg {
	ctx := context.Background()
	children, err := h.deps.Clinic.Children(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	stats, err := h.deps.Clinic.Stats(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	name, err := h.deps.Clinic.TherapistName(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{children: children, stats: stats, therapist: name}
}

func (h *HomeScreen) Title() string {
	return "Início"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Abrir"},
		{Key: "q", Description: "Sair"},
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.children)+3)
	for _, c := range h.children {
		id := c.ID
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s (%d anos)", c.Name, c.Age),
			Action: func() tea.Cmd {
				return router.Push(childmenu.New(h.deps, id))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "+ Nova criança", Action: func() tea.Cmd {
			return router.Push(childform.New(h.deps, ""))
		}},
		components.MenuItem{Label: "Terapeuta", Hint: h.therapist, Action: func() tea.Cmd {
			return router.Push(therapist.New(h.deps))
		}},
		components.MenuItem{Label: "Sair", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.loaded = true
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.children = msg.children
		h.stats = msg.stats
		h.therapist = msg.therapist
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		if selected < len(h.menu.Items) {
			h.menu.Selected = selected
		}
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	if h.errMsg != "" {
		return screens.Error(width, h.errMsg)
	}
	if !h.loaded {
		return screens.Loading(width, "Carregando...")
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, theme.Title.Render("Inventário Portage Operacionalizado"))
	sections = append(sections, renderStats(h.stats, cw))

	var list string
	if len(h.children) == 0 {
		list = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Nenhuma criança cadastrada.") + "\n\n"
	}
	list += strings.TrimRight(h.menu.View(), "\n")
	sections = append(sections, components.Panel("Crianças", list, cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderStats(st clinic.Stats, cw int) string {
	cell := func(label string, n int) string {
		return lipgloss.NewStyle().Width((cw - 4) / 2).Align(lipgloss.Center).Render(
			theme.Heading.Render(fmt.Sprintf("%d", n)) + "\n" + theme.Hint.Render(label))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Render(lipgloss.JoinHorizontal(lipgloss.Top,
			cell("Crianças", st.Children), cell("Avaliações", st.Evaluations)))
}
