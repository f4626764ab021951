package components

import (
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/multikids/portage/internal/ui/theme"
)

const labelWidth = 14

// TextInput is a labelled bubbles text input. Check, when set, describes
// what is wrong with a value; Validate runs it and the result is drawn as
// a mark after the field until the value is edited again.
type TextInput struct {
	Model  textinput.Model
	Label  string
	Digits bool
	Check  func(string) string

	checked bool
	problem string
}

// NewTextInput builds an unfocused input. limit caps the number of
// characters; digits drops every key that is not 0-9.
func NewTextInput(label, placeholder string, digits bool, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	return TextInput{Model: m, Label: label, Digits: digits}
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }
func (t TextInput) Focused() bool   { return t.Model.Focused() }
func (t TextInput) Value() string   { return t.Model.Value() }

func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.checked = false
}

// Validate runs Check against the current value and reports whether it
// passed. Without a Check every value passes.
func (t *TextInput) Validate() bool {
	t.checked = true
	t.problem = ""
	if t.Check != nil {
		t.problem = t.Check(t.Value())
	}
	return t.problem == ""
}

// Problem is the message from the last failed Validate.
func (t TextInput) Problem() string { return t.problem }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && t.Digits && key.Text != "" {
		for _, r := range key.Text {
			if !unicode.IsDigit(r) {
				return t, nil
			}
		}
	}
	before := t.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Value() != before {
		t.checked = false
	}
	return t, cmd
}

func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(labelWidth)
	if t.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(labelWidth)
	}
	out := label.Render(t.Label) + t.Model.View()
	switch {
	case !t.checked:
	case t.problem == "":
		out += " " + theme.Valid.Render("✓")
	default:
		out += " " + theme.Invalid.Render("✗")
	}
	return out
}
