package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func typeText(t TextInput, s string) TextInput {
	for _, r := range s {
		t, _ = t.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return t
}

func TestTextInput_DigitsOnly(t *testing.T) {
	in := NewTextInput("Idade (anos)", "0", true, 2)
	in.Focus()
	in = typeText(in, "a4b2")
	assert.Equal(t, "42", in.Value())

	in = typeText(in, "7")
	assert.Equal(t, "42", in.Value(), "limit of two characters")
}

func TestTextInput_Validate(t *testing.T) {
	in := NewTextInput("Nome", "", false, 0)
	in.Check = func(v string) string {
		if v == "" {
			return "Informe o nome."
		}
		return ""
	}
	in.Focus()

	assert.False(t, in.Validate())
	assert.Equal(t, "Informe o nome.", in.Problem())
	assert.Contains(t, in.View(), "✗")

	in = typeText(in, "Ana")
	assert.NotContains(t, in.View(), "✗", "editing clears the mark")

	assert.True(t, in.Validate())
	assert.Empty(t, in.Problem())
	assert.Contains(t, in.View(), "✓")

	in.SetValue("")
	assert.NotContains(t, in.View(), "✓")
}

func TestTextInput_NoCheckAlwaysValid(t *testing.T) {
	in := NewTextInput("Observações", "opcional", false, 200)
	assert.True(t, in.Validate())
	assert.Contains(t, in.View(), "Observações")
}
