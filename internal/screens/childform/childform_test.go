package childform

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/screens/screentest"
)

func TestCreateChild(t *testing.T) {
	deps := screentest.Deps(t)
	f := New(deps, "")

	s := screentest.Type(f, "Ana")
	s, _ = screentest.Press(s, "tab")
	s = screentest.Type(s, "3")
	s, _ = screentest.Press(s, "tab")
	s = screentest.Type(s, "prematura")

	_, cmd := screentest.Press(s, "enter")
	require.NotNil(t, cmd)

	_, popCmd := f.Update(cmd())
	require.NotNil(t, popCmd)
	assert.IsType(t, router.PopScreenMsg{}, popCmd())

	children, err := deps.Clinic.Children(context.Background())
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Ana", children[0].Name)
	assert.Equal(t, 3, children[0].Age)
	assert.Equal(t, "prematura", children[0].Notes)
}

func TestAgeRejectsLetters(t *testing.T) {
	f := New(screentest.Deps(t), "")
	s, _ := screentest.Press(f, "tab")
	screentest.Type(s, "a1b")

	_, age, _ := f.Value()
	assert.Equal(t, "1", age)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		nome string
		age  string
		want string
	}{
		{"missing name", "", "2", "Informe o nome"},
		{"missing age", "Ana", "", "Informe uma idade"},
		{"age too high", "Ana", "19", "Informe uma idade"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := screentest.Deps(t)
			f := New(deps, "")
			s := screentest.Type(f, tt.nome)
			s, _ = screentest.Press(s, "tab")
			s = screentest.Type(s, tt.age)

			_, cmd := screentest.Press(s, "enter")
			assert.Nil(t, cmd)
			assert.Contains(t, f.View(80, 24), tt.want)

			children, err := deps.Clinic.Children(context.Background())
			require.NoError(t, err)
			assert.Empty(t, children)
		})
	}
}

func TestEditChild(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Bia", 4)

	f := New(deps, c.ID)
	assert.Equal(t, "Editar criança", f.Title())
	screentest.Load(f)

	name, age, _ := f.Value()
	assert.Equal(t, "Bia", name)
	assert.Equal(t, "4", age)

	s, _ := screentest.Press(f, "tab", "backspace")
	s = screentest.Type(s, "5")
	_, cmd := screentest.Press(s, "ctrl+s")
	require.NotNil(t, cmd)
	f.Update(cmd())

	got, err := deps.Clinic.Child(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Age)
	assert.Equal(t, "Bia", got.Name)
}

func TestEscCancels(t *testing.T) {
	f := New(screentest.Deps(t), "")
	_, cmd := screentest.Press(f, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestViewShowsFields(t *testing.T) {
	view := New(screentest.Deps(t), "").View(80, 24)
	for _, label := range []string{"Nome", "Idade", "Observações", "Nova criança"} {
		assert.True(t, strings.Contains(view, label), "missing %q", label)
	}
}
