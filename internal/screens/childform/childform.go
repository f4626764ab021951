// Package childform is the create and edit form for a child's details.
package childform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screen"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/ui/components"
	"github.com/multikids/portage/internal/ui/layout"
	"github.com/multikids/portage/internal/ui/theme"
)

const (
	fieldName = iota
	fieldAge
	fieldNotes
	fieldCount
)

type loadedMsg struct {
	child child.Child
	err   error
}

type savedMsg struct {
	child child.Child
	err   error
}

// FormScreen edits a child's name, age and notes. An empty ID creates a new child.
type FormScreen struct {
	deps    screens.Deps
	childID string
	fields  [fieldCount]components.TextInput
	focus   int
	loaded  bool
	saving  bool
	errMsg  string
}

var (
	_ screen.Screen          = (*FormScreen)(nil)
	_ screen.KeyHintProvider = (*FormScreen)(nil)
)

// New creates the form. childID selects the child to edit, or "" for a new one.
func New(deps screens.Deps, childID string) *FormScreen {
	f := &FormScreen{
		deps:    deps,
		childID: childID,
		loaded:  childID == "",
	}
	f.fields[fieldName] = components.NewTextInput("Nome", "Nome da criança", false, 60)
	f.fields[fieldName].Check = func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "Informe o nome da criança."
		}
		return ""
	}
	f.fields[fieldAge] = components.NewTextInput("Idade (anos)", "0", true, 2)
	f.fields[fieldAge].Check = func(v string) string {
		if age, err := strconv.Atoi(v); err != nil || age < 0 || age > clinic.MaxAge {
			return fmt.Sprintf("Informe uma idade entre 0 e %d anos.", clinic.MaxAge)
		}
		return ""
	}
	f.fields[fieldNotes] = components.NewTextInput("Observações", "opcional", false, 200)
	f.fields[fieldName].Focus()
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	if f.childID == "" {
		return nil
	}
	return f.Load
}

// Load reads the child being edited.
func (f *FormScreen) Load() tea.Msg {
	if f.childID == "" {
		return nil
	}
	c, err := f.deps.Clinic.Child(context.Background(), f.childID)
	return loadedMsg{child: c, err: err}
}

func (f *FormScreen) Title() string {
	if f.childID == "" {
		return "Nova criança"
	}
	return "Editar criança"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Próximo campo"},
		{Key: "Enter", Description: "Salvar"},
		{Key: "Esc", Description: "Cancelar"},
	}
}

// Value returns the current content of the form as typed.
func (f *FormScreen) Value() (name, age, notes string) {
	return f.fields[fieldName].Value(), f.fields[fieldAge].Value(), f.fields[fieldNotes].Value()
}

func (f *FormScreen) setFocus(i int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.fields[f.focus].Focus()
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		f.loaded = true
		if msg.err != nil {
			f.errMsg = msg.err.Error()
			return f, nil
		}
		f.fields[fieldName].SetValue(msg.child.Name)
		f.fields[fieldAge].SetValue(strconv.Itoa(msg.child.Age))
		f.fields[fieldNotes].SetValue(msg.child.Notes)
		return f, nil

	case savedMsg:
		f.saving = false
		if msg.err != nil {
			f.errMsg = describe(msg.err)
			return f, nil
		}
		return f, router.Pop()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return f, router.Pop()
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		case "enter", "ctrl+s":
			return f, f.submit()
		}
	}

	if !f.loaded || f.saving {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return f, cmd
}

func (f *FormScreen) submit() tea.Cmd {
	if !f.loaded || f.saving {
		return nil
	}
	for i := range f.fields {
		if !f.fields[i].Validate() {
			f.errMsg = f.fields[i].Problem()
			return nil
		}
	}
	name, ageText, notes := f.Value()
	age, _ := strconv.Atoi(ageText)
	f.errMsg = ""
	f.saving = true
	return f.save(name, age, notes)
}

func (f *FormScreen) save(name string, age int, notes string) tea.Cmd {
	svc, id := f.deps.Clinic, f.childID
	return func() tea.Msg {
		ctx := context.Background()
		if id == "" {
			c, err := svc.RegisterChild(ctx, name, age, notes)
			return savedMsg{child: c, err: err}
		}
		c, err := svc.UpdateChild(ctx, id, name, age, notes)
		return savedMsg{child: c, err: err}
	}
}

func describe(err error) string {
	if errors.Is(err, clinic.ErrInvalidChild) {
		return "Dados inválidos: " + err.Error()
	}
	return "Não foi possível salvar: " + err.Error()
}

func (f *FormScreen) View(width, height int) string {
	if !f.loaded {
		return screens.Loading(width, "Carregando...")
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	for i := range f.fields {
		b.WriteString(f.fields[i].View())
		b.WriteString("\n\n")
	}
	if f.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(f.errMsg))
		b.WriteString("\n")
	}
	if f.saving {
		b.WriteString(theme.Hint.Render("Salvando..."))
	} else {
		ready := strings.TrimSpace(f.fields[fieldName].Value()) != "" && f.fields[fieldAge].Value() != ""
		b.WriteString(components.Button("Salvar (Enter)", ready))
	}

	return components.Frame(components.Panel(f.Title(), strings.TrimRight(b.String(), "\n"), cw), width, height)
}
