package childmenu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screens/childform"
	"github.com/multikids/portage/internal/screens/history"
	"github.com/multikids/portage/internal/screens/questionnaire"
	"github.com/multikids/portage/internal/screens/reportview"
	"github.com/multikids/portage/internal/screens/screentest"
	"github.com/multikids/portage/internal/store"
)

func TestShowsChildDetails(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	screentest.Evaluate(t, deps, c.ID, catalog.CategoryLinguagem, "2", scoring.AnswerSim, nil)

	s := New(deps, c.ID)
	screentest.Load(s)

	view := s.View(80, 30)
	assert.Equal(t, "Ana", s.Title())
	assert.Contains(t, view, "Idade: 2 anos")
	assert.Contains(t, view, "Avaliações: 1")
	assert.Contains(t, view, "Última avaliação: 01/03/2024 (Linguagem)")
}

func TestActionsPushScreens(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)

	tests := []struct {
		downs int
		want  any
	}{
		{0, &questionnaire.QuestionnaireScreen{}},
		{1, &reportview.ReportScreen{}},
		{2, &history.HistoryScreen{}},
		{3, &childform.FormScreen{}},
	}
	for _, tt := range tests {
		s := New(deps, c.ID)
		screentest.Load(s)
		for i := 0; i < tt.downs; i++ {
			screentest.Press(s, "down")
		}
		_, cmd := screentest.Press(s, "enter")
		require.NotNil(t, cmd)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok)
		assert.IsType(t, tt.want, msg.Screen)
	}
}

func TestDeleteWithConfirmation(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	s := New(deps, c.ID)
	screentest.Load(s)

	screentest.Press(s, "down", "down", "down", "down", "enter")
	require.True(t, s.confirming)
	assert.Contains(t, s.View(80, 30), "Excluir Ana e todas as avaliações?")

	// Declining keeps the child.
	screentest.Press(s, "n")
	assert.False(t, s.confirming)
	_, err := deps.Clinic.Child(context.Background(), c.ID)
	require.NoError(t, err)

	screentest.Press(s, "enter")
	_, cmd := screentest.Press(s, "s")
	require.NotNil(t, cmd)
	_, pop := s.Update(cmd())
	require.NotNil(t, pop)
	assert.IsType(t, router.PopScreenMsg{}, pop())

	_, err = deps.Clinic.Child(context.Background(), c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResumeReloads(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	s := New(deps, c.ID)
	screentest.Load(s)

	_, err := deps.Clinic.UpdateChild(context.Background(), c.ID, "Ana Clara", 3, "")
	require.NoError(t, err)

	s.Update(s.Resume()())
	assert.Equal(t, "Ana Clara", s.Title())
	assert.Contains(t, s.View(80, 30), "Idade: 3 anos")
}

func TestBackActions(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	s := New(deps, c.ID)
	screentest.Load(s)

	_, cmd := screentest.Press(s, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	_, cmd = screentest.Press(s, "down", "down", "down", "down", "down", "enter")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
