// Package questionnaire runs a PORTAGE evaluation: pick a category and an
// age band, answer every question, then finalize.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/evaluation"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/screens/reportview"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

type step int

const (
	stepCategory step = iota
	stepAgeBand
	stepQuestions
)

type loadedMsg struct {
	child child.Child
	err   error
}

type finalizedMsg struct {
	err error
}

// answerKeys maps single keys to answers. Upper-case letters fill every question.
var (
	answerKeys = map[string]scoring.Answer{
		"0": scoring.AnswerNao, "n": scoring.AnswerNao,
		"1": scoring.AnswerAsVezes, "a": scoring.AnswerAsVezes, "v": scoring.AnswerAsVezes,
		"2": scoring.AnswerSim, "s": scoring.AnswerSim,
	}
	fillKeys = map[string]scoring.Answer{
		"N": scoring.AnswerNao,
		"V": scoring.AnswerAsVezes,
		"S": scoring.AnswerSim,
	}
)

// QuestionnaireScreen walks the therapist through one evaluation.
type QuestionnaireScreen struct {
	deps    screens.Deps
	childID string
	child   child.Child

	step       step
	categories []catalog.Category
	category   components.Choice
	bands      []string
	band       components.Choice

	draft  *evaluation.Draft
	cursor int

	loaded     bool
	finalizing bool
	errMsg     string
	notice     string
}

var (
	_ screen.Screen          = (*QuestionnaireScreen)(nil)
	_ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
)

// New creates the questionnaire for a child.
func New(deps screens.Deps, childID string) *QuestionnaireScreen {
	cats := catalog.Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = string(c)
	}
	bands := catalog.AllAgeBands()
	bandLabels := make([]string, len(bands))
	for i, b := range bands {
		bandLabels[i] = bandLabel(b)
	}
	return &QuestionnaireScreen{
		deps:       deps,
		childID:    childID,
		categories: cats,
		category:   components.NewChoice(labels),
		bands:      bands,
		band:       components.NewChoice(bandLabels),
	}
}

func bandLabel(b string) string {
	if b == catalog.AgeBandInfant {
		return "0-1 ano"
	}
	if b == "1" {
		return "1 ano"
	}
	return b + " anos"
}

func (q *QuestionnaireScreen) Init() tea.Cmd {
	return q.Load
}

// Load reads the child being evaluated.
func (q *QuestionnaireScreen) Load() tea.Msg {
	c, err := q.deps.Clinic.Child(context.Background(), q.childID)
	return loadedMsg{child: c, err: err}
}

func (q *QuestionnaireScreen) Title() string {
	return "Nova avaliação"
}

func (q *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	switch q.step {
	case stepQuestions:
		return []layout.KeyHint{
			{Key: "s/a/n", Description: "Sim/Às vezes/Não"},
			{Key: "S/V/N", Description: "Preencher tudo"},
			{Key: "↑↓", Description: "Navegar"},
			{Key: "Ctrl+S", Description: "Finalizar"},
			{Key: "Esc", Description: "Cancelar"},
		}
	default:
		return []layout.KeyHint{
			{Key: "←→", Description: "Escolher"},
			{Key: "Enter", Description: "Confirmar"},
			{Key: "Esc", Description: "Voltar"},
		}
	}
}

// Draft returns the questionnaire being answered, or nil before the questions step.
func (q *QuestionnaireScreen) Draft() *evaluation.Draft {
	return q.draft
}

func (q *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		q.loaded = true
		if msg.err != nil {
			q.errMsg = msg.err.Error()
			return q, nil
		}
		q.child = msg.child
		q.band.Select(slices.Index(q.bands, catalog.AgeBandFor(msg.child.Age)))
		q.band.Selected = -1
		return q, nil

	case finalizedMsg:
		q.finalizing = false
		if msg.err != nil {
			q.notice = ""
			q.errMsg = describe(msg.err)
			return q, nil
		}
		return q, router.Replace(reportview.New(q.deps, q.childID))

	case tea.KeyMsg:
		if !q.loaded || q.finalizing {
			if msg.String() == "esc" {
				return q, router.Pop()
			}
			return q, nil
		}
		switch q.step {
		case stepCategory:
			return q.updateCategory(msg)
		case stepAgeBand:
			return q.updateAgeBand(msg)
		case stepQuestions:
			return q.updateQuestions(msg)
		}
	}
	return q, nil
}

func (q *QuestionnaireScreen) updateCategory(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		return q, router.Pop()
	}
	q.category, _ = q.category.Update(msg)
	if q.category.Selected >= 0 {
		q.step = stepAgeBand
	}
	return q, nil
}

func (q *QuestionnaireScreen) updateAgeBand(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		q.category.Selected = -1
		q.step = stepCategory
		return q, nil
	}
	q.band, _ = q.band.Update(msg)
	if q.band.Selected < 0 {
		return q, nil
	}
	d, err := evaluation.NewDraft(q.childID, q.categories[q.category.Selected], q.bands[q.band.Selected])
	if err != nil {
		q.band.Selected = -1
		q.errMsg = err.Error()
		return q, nil
	}
	q.draft = d
	q.cursor = 0
	q.errMsg = ""
	q.step = stepQuestions
	return q, nil
}

func (q *QuestionnaireScreen) updateQuestions(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	last := len(q.draft.Questions) - 1

	if a, ok := fillKeys[key]; ok {
		_ = q.draft.FillAll(a)
		q.errMsg = ""
		q.notice = fmt.Sprintf("Todas as respostas marcadas como %q.", a.Label())
		return q, nil
	}
	if a, ok := answerKeys[key]; ok {
		_ = q.draft.Answer(q.draft.Questions[q.cursor].ID, a)
		q.errMsg, q.notice = "", ""
		if q.cursor < last {
			q.cursor++
		}
		return q, nil
	}

	switch key {
	case "esc":
		return q, router.Pop()
	case "up", "k":
		if q.cursor > 0 {
			q.cursor--
		}
	case "down", "j":
		if q.cursor < last {
			q.cursor++
		}
	case "ctrl+s", "enter":
		return q, q.finalize()
	}
	return q, nil
}

func (q *QuestionnaireScreen) finalize() tea.Cmd {
	if missing := q.draft.Missing(); len(missing) > 0 {
		q.errMsg = fmt.Sprintf("Responda todas as perguntas antes de finalizar (faltam %d).", len(missing))
		if i := slices.IndexFunc(q.draft.Questions, func(x catalog.Question) bool { return x.ID == missing[0] }); i >= 0 {
			q.cursor = i
		}
		return nil
	}
	q.finalizing = true
	q.notice = "Salvando avaliação..."
	svc, d := q.deps.Clinic, q.draft
	return func() tea.Msg {
		_, err := svc.Finalize(context.Background(), d)
		return finalizedMsg{err: err}
	}
}

func describe(err error) string {
	var inc *evaluation.IncompleteError
	if errors.As(err, &inc) {
		return fmt.Sprintf("Responda todas as perguntas antes de finalizar (faltam %d).", len(inc.Missing))
	}
	return "Não foi possível salvar a avaliação: " + err.Error()
}

func (q *QuestionnaireScreen) View(width, height int) string {
	if !q.loaded {
		return screens.Loading(width, "Carregando...")
	}
	if q.child.ID == "" && q.errMsg != "" {
		return screens.Error(width, q.errMsg)
	}

	cw := components.ContentWidth(width)
	header := theme.Heading.Render(fmt.Sprintf("%s · %d anos", q.child.Name, q.child.Age))

	var body string
	switch q.step {
	case stepCategory:
		body = components.Panel("Área", q.category.View(true), cw)
	case stepAgeBand:
		body = components.Panel("Área", q.category.View(false), cw) + "\n" +
			components.Panel("Faixa etária", q.band.View(true), cw)
	case stepQuestions:
		body = q.viewQuestions(cw, height-8)
	}

	sections := []string{header, body}
	if q.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(q.errMsg))
	}
	if q.notice != "" {
		sections = append(sections, theme.Hint.Render(q.notice))
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (q *QuestionnaireScreen) viewQuestions(cw, rows int) string {
	d := q.draft
	title := fmt.Sprintf("%s · %s", d.Category, bandLabel(d.AgeBand))
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", d.Answered(), len(d.Questions)),
		float64(d.Answered())/float64(len(d.Questions)), false, cw-4)

	// Each question takes two lines.
	visible := max(rows/2-2, 3)
	start := max(0, min(q.cursor-visible/2, len(d.Questions)-visible))
	end := min(start+visible, len(d.Questions))

	var b strings.Builder
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	for i := start; i < end; i++ {
		question := d.Questions[i]
		style := theme.Unselected
		prefix := "  "
		if i == q.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Width(cw - 4).Render(fmt.Sprintf("%s%d. %s", prefix, i+1, question.Text)))
		b.WriteString("\n")
		b.WriteString("    " + answerView(d, question.ID))
		b.WriteString("\n")
	}
	return components.Panel(title, strings.TrimRight(b.String(), "\n"), cw)
}

func answerView(d *evaluation.Draft, id string) string {
	got, answered := d.AnswerOf(id)
	parts := make([]string, 0, 3)
	for _, a := range []scoring.Answer{scoring.AnswerSim, scoring.AnswerAsVezes, scoring.AnswerNao} {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		mark := "○"
		if answered && got == a {
			style = style.Foreground(answerColor(a)).Bold(true)
			mark = "●"
		}
		parts = append(parts, style.Render(mark+" "+a.Label()))
	}
	return strings.Join(parts, "   ")
}

func answerColor(a scoring.Answer) color.Color {
	switch a {
	case scoring.AnswerSim:
		return theme.Success
	case scoring.AnswerAsVezes:
		return theme.Accent
	default:
		return theme.Error
	}
}
