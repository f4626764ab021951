// Package history lists every evaluation recorded for a child.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

type historyLoadedMsg struct {
	child child.Child
	err   error
}

// HistoryScreen displays a child's evaluations, newest first.
type HistoryScreen struct {
	deps     screens.Deps
	childID  string
	child    child.Child
	entries  []report.TimelineEntry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screens.Deps, childID string) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		childID:  childID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.Load
}

// Load reads the child's evaluations.
func (s *HistoryScreen) Load() tea.Msg {
	c, err := s.deps.Clinic.Child(context.Background(), s.childID)
	return historyLoadedMsg{child: c, err: err}
}

func (s *HistoryScreen) Title() string {
	return "Histórico"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detalhes"},
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

// index maps a display row to the evaluation index; rows are newest first.
func (s *HistoryScreen) index(row int) int {
	return len(s.entries) - 1 - row
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.child = msg.child
			s.entries = report.History(msg.child.Evaluations)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return screens.Error(width, s.errMsg)
	}
	if !s.loaded {
		return screens.Loading(width, "Carregando histórico...")
	}
	if len(s.entries) == 0 {
		return screens.Empty(width, "Nenhuma avaliação registrada.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Heading.Render(fmt.Sprintf("%s · %d avaliações", s.child.Name, len(s.entries)))))
	b.WriteString("\n\n")

	for row := range s.entries {
		i := s.index(row)
		e := s.entries[i]

		prefix := "  "
		if row == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-12s faixa %-4s %2d/%-2d  %5.1f%%",
			prefix, e.Date.Format(screens.DateLayout), e.Category, e.AgeBand, e.Raw, e.Max, e.Percentage())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if row == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[row] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render(answerBreakdown(s.child.Evaluations[i].Answers))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// answerBreakdown counts how often each answer was given.
func answerBreakdown(answers map[string]int) string {
	counts := make(map[scoring.Answer]int, 3)
	for _, v := range answers {
		counts[scoring.Answer(v)]++
	}
	parts := make([]string, 0, 3)
	for _, a := range []scoring.Answer{scoring.AnswerSim, scoring.AnswerAsVezes, scoring.AnswerNao} {
		parts = append(parts, fmt.Sprintf("%s: %d", a.Label(), counts[a]))
	}
	return "    " + strings.Join(parts, "  ")
}
