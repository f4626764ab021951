// Package reportview shows a child's development report in four tabs.
package reportview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/export"
	"github.com/multikids/portage/internal/narrative"
	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

// Tab is one section of the report.
type Tab int

const (
	TabOverview Tab = iota
	TabProgress
	TabDetailed
	TabGoals
)

var tabNames = []string{"Visão Geral", "Progresso", "Detalhado", "Metas"}

func (t Tab) String() string { return tabNames[t] }

const pollInterval = 250 * time.Millisecond

type loadedMsg struct {
	full      report.Full
	therapist string
	err       error
}

type narrativePollMsg struct{}

type savedMsg struct {
	path string
	err  error
}

// ReportScreen renders the report tabs for one child.
type ReportScreen struct {
	deps    screens.Deps
	childID string

	full      report.Full
	therapist string
	recs      []narrative.Recommendation
	writing   bool
	ticket    narrative.Ticket
	cancel    context.CancelFunc

	tab    Tab
	scroll int
	loaded bool
	errMsg string
	notice string
}

var (
	_ screen.Screen          = (*ReportScreen)(nil)
	_ screen.KeyHintProvider = (*ReportScreen)(nil)
	_ screen.Closer          = (*ReportScreen)(nil)
)

// New creates the report screen for a child.
func New(deps screens.Deps, childID string) *ReportScreen {
	return &ReportScreen{deps: deps, childID: childID}
}

func (r *ReportScreen) Init() tea.Cmd {
	return r.Load
}

// Load computes the report.
func (r *ReportScreen) Load() tea.Msg {
	ctx := context.Background()
	full, err := r.deps.Clinic.Report(ctx, r.childID, r.deps.Time())
	if err != nil {
		return loadedMsg{err: err}
	}
	therapist, err := r.deps.Clinic.TherapistName(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{full: full, therapist: therapist}
}

func (r *ReportScreen) Title() string {
	return "Relatório"
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Abas"},
		{Key: "↑↓", Description: "Rolar"},
		{Key: "e", Description: "Salvar HTML"},
		{Key: "Esc", Description: "Voltar"},
	}
}

// Tab returns the active tab.
func (r *ReportScreen) Tab() Tab {
	return r.tab
}

// Recommendations returns the recommendations currently shown.
func (r *ReportScreen) Recommendations() []narrative.Recommendation {
	return r.recs
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return narrativePollMsg{} })
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		r.loaded = true
		if msg.err != nil {
			r.errMsg = msg.err.Error()
			return r, nil
		}
		r.full, r.therapist = msg.full, msg.therapist
		r.recs = narrative.Static(msg.full.Report)
		if r.deps.Narrative != nil && r.deps.Narrative.Enabled() && len(r.recs) > 0 {
			ctx, cancel := context.WithCancel(context.Background())
			r.writing, r.cancel = true, cancel
			r.ticket = r.deps.Narrative.Request(ctx, msg.full)
			return r, poll()
		}
		return r, nil

	case narrativePollMsg:
		if !r.writing {
			return r, nil
		}
		recs, ok := r.deps.Narrative.Consume(r.ticket)
		if !ok {
			return r, poll()
		}
		r.recs = recs
		r.Close()
		return r, nil

	case savedMsg:
		if msg.err != nil {
			r.notice = "Erro ao salvar: " + msg.err.Error()
		} else {
			r.notice = "Relatório salvo em " + msg.path
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return r, router.Pop()
		case "right", "l", "tab":
			r.setTab((r.tab + 1) % Tab(len(tabNames)))
		case "left", "h", "shift+tab":
			r.setTab((r.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		case "1", "2", "3", "4":
			r.setTab(Tab(msg.String()[0] - '1'))
		case "down", "j":
			r.scroll++
		case "up", "k":
			if r.scroll > 0 {
				r.scroll--
			}
		case "e":
			if r.loaded && r.errMsg == "" {
				return r, r.save()
			}
		}
	}
	return r, nil
}

// Close stops a pending recommendation request.
func (r *ReportScreen) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.writing = false
}

func (r *ReportScreen) setTab(t Tab) {
	r.tab = t
	r.scroll = 0
}

func (r *ReportScreen) save() tea.Cmd {
	in := export.Input{Full: r.full, Therapist: r.therapist, Recommendations: r.recs}
	path := filepath.Join(r.deps.ExportDir, export.FileName(r.full, export.FormatHTML))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return savedMsg{err: err}
		}
		if err := export.HTML(f, in); err != nil {
			f.Close()
			return savedMsg{err: err}
		}
		return savedMsg{path: path, err: f.Close()}
	}
}

func (r *ReportScreen) View(width, height int) string {
	if r.errMsg != "" {
		return screens.Error(width, r.errMsg)
	}
	if !r.loaded {
		return screens.Loading(width, "Calculando relatório...")
	}

	cw := components.ContentWidth(width)
	c := r.full.Child
	head := theme.Heading.Render(c.Name) + theme.Hint.Render(
		fmt.Sprintf("  %d anos · %s", c.Age, r.full.GeneratedAt.Format(screens.DateLayout)))

	var body string
	switch r.tab {
	case TabOverview:
		body = r.viewOverview(cw)
	case TabProgress:
		body = r.viewProgress(cw)
	case TabDetailed:
		body = r.viewDetailed(cw)
	case TabGoals:
		body = r.viewGoals(cw)
	}

	// Scroll within the space left under the header, tabs and notice.
	lines := strings.Split(body, "\n")
	rows := max(height-8, 5)
	r.scroll = min(r.scroll, max(len(lines)-rows, 0))
	end := min(r.scroll+rows, len(lines))
	body = strings.Join(lines[r.scroll:end], "\n")

	sections := []string{head, renderTabs(r.tab), body}
	if r.notice != "" {
		sections = append(sections, theme.Hint.Render(r.notice))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n")))
}

func renderTabs(active Tab) string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == active {
			parts[i] = theme.TabActive.Render(name)
		} else {
			parts[i] = theme.TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *ReportScreen) recommendationFor(s report.CategorySummary) (narrative.Recommendation, bool) {
	for _, rec := range r.recs {
		if rec.Category == s.Category {
			return rec, true
		}
	}
	return narrative.Recommendation{}, false
}

func (r *ReportScreen) viewOverview(cw int) string {
	rep := r.full.Report
	var b strings.Builder

	if len(rep.Summaries) == 0 {
		b.WriteString(theme.Hint.Render("Nenhuma avaliação registrada."))
		b.WriteString("\n")
	}
	for _, s := range rep.Summaries {
		bar := components.NewProgressBar("", s.Percentage/100, true, cw-4)
		bar.Fill = theme.ClassColor(s.Class)
		bar.Target = s.Ideal / 100
		fmt.Fprintf(&b, "%s  %s\n", theme.Heading.Render(string(s.Category)), theme.Badge(s.Class))
		fmt.Fprintf(&b, "%s\n", bar.View())
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Pontuação %d/%d · Ideal %s%% · Faixa %s",
			s.Raw, s.Max, report.FormatPercent(s.Ideal), s.AgeBand)))
		b.WriteString("\n")
		if rec, ok := r.recommendationFor(s); ok {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw - 4).Render(rec.Summary))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var counts []string
	for _, cc := range rep.CategoryCounts {
		counts = append(counts, fmt.Sprintf("%s: %d", cc.Category, cc.Count))
	}
	fmt.Fprintf(&b, "Avaliações realizadas: %d\n", rep.TotalEvaluations)
	b.WriteString(theme.Hint.Width(cw - 4).Render(strings.Join(counts, " · ")))
	if len(rep.Summaries) > 0 {
		fmt.Fprintf(&b, "\nMédia geral: %.1f%%", rep.Average)
	}
	if r.writing {
		b.WriteString("\n\n" + theme.Hint.Render("Gerando recomendações..."))
	}
	return components.Panel("", b.String(), cw)
}

func (r *ReportScreen) viewProgress(cw int) string {
	if len(r.full.Timeline) == 0 {
		return components.Panel("Últimas avaliações", theme.Hint.Render("Nenhuma avaliação registrada."), cw)
	}
	var b strings.Builder
	for _, e := range r.full.Timeline {
		fmt.Fprintf(&b, "%s  %s  %d/%d\n", e.Date.Format(screens.DateLayout), e.Category, e.Raw, e.Max)
		b.WriteString(components.NewProgressBar("", e.Percentage()/100, true, cw-4).View())
		b.WriteString("\n\n")
	}
	return components.Panel("Últimas avaliações", strings.TrimRight(b.String(), "\n"), cw)
}

func (r *ReportScreen) viewDetailed(cw int) string {
	rep := r.full.Report
	if len(rep.Summaries) == 0 {
		return components.Panel("Análise por área", theme.Hint.Render("Nenhuma avaliação registrada."), cw)
	}
	var b strings.Builder
	for _, s := range rep.Summaries {
		fmt.Fprintf(&b, "%s  %s\n", theme.Heading.Render(string(s.Category)), theme.Badge(s.Class))
		fmt.Fprintf(&b, "Resultado %.1f%% · Esperado %s%%\n", s.Percentage, report.FormatPercent(s.Ideal))
		b.WriteString(theme.Hint.Render(s.Class.Description()))
		b.WriteString("\n")
		if rec, ok := r.recommendationFor(s); ok {
			if rec.Source == narrative.SourceLLM {
				b.WriteString(lipgloss.NewStyle().Width(cw - 4).Render(rec.Summary))
				b.WriteString("\n")
			}
			b.WriteString("Ações recomendadas:\n")
			for _, a := range rec.Actions {
				b.WriteString(lipgloss.NewStyle().Width(cw - 4).Render("  • " + a))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return components.Panel("Análise por área", strings.TrimRight(b.String(), "\n"), cw)
}

func (r *ReportScreen) viewGoals(cw int) string {
	var b strings.Builder
	if len(r.full.Goals) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(report.NoGoalsText))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(report.NoGoalsFollowUp))
		b.WriteString("\n\n")
	}
	for _, g := range r.full.Goals {
		fmt.Fprintf(&b, "%s  %s\n", theme.Heading.Render(string(g.Category)), theme.Badge(g.Class))
		b.WriteString(g.Text())
		b.WriteString("\n")
		bar := components.NewProgressBar(
			fmt.Sprintf("Atual %.1f%% / Ideal %s%%", g.Current, report.FormatPercent(g.Ideal)),
			g.Progress, false, cw-4)
		bar.Fill = theme.ClassColor(g.Class)
		b.WriteString(bar.View())
		b.WriteString("\n")
		for _, a := range g.Actions {
			b.WriteString("  • " + a + "\n")
		}
		b.WriteString("\n")
	}

	p := r.full.Plan
	b.WriteString(theme.Heading.Render("Planejamento Futuro"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Próxima avaliação: %s\n", p.NextEvaluation.Format(screens.DateLayout))
	fmt.Fprintf(&b, "Acompanhamento: %s\n", p.FollowUp)
	fmt.Fprintf(&b, "Atividades em casa: %s", p.HomeActivities)
	return components.Panel("Metas de intervenção", b.String(), cw)
}
