package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/evaluation"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screens/screentest"
)

func TestHistory_ListsAllEvaluationsNewestFirst(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)

	categories := []catalog.Category{
		catalog.CategoryMotricidade, catalog.CategoryLinguagem, catalog.CategoryCognicao,
		catalog.CategoryAutoajuda, catalog.CategorySocializacao, catalog.CategoryMotricidade,
	}
	for _, cat := range categories {
		d, err := evaluation.NewDraft(c.ID, cat, "2")
		require.NoError(t, err)
		require.NoError(t, d.FillAll(scoring.AnswerSim))
		_, err = deps.Clinic.Finalize(context.Background(), d)
		require.NoError(t, err)
	}

	s := New(deps, c.ID)
	screentest.Load(s)
	require.Len(t, s.entries, 6)

	view := s.View(100, 30)
	assert.Contains(t, view, "6 avaliações")
	assert.Contains(t, view, "01/03/2024")
	assert.Contains(t, view, "100.0%")

	// The newest row is selected first.
	assert.Equal(t, 5, s.index(0))
}

func TestHistory_ExpandShowsAnswers(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	d, err := evaluation.NewDraft(c.ID, catalog.CategoryLinguagem, "2")
	require.NoError(t, err)
	require.NoError(t, d.FillAll(scoring.AnswerAsVezes))
	_, err = deps.Clinic.Finalize(context.Background(), d)
	require.NoError(t, err)

	s := New(deps, c.ID)
	screentest.Load(s)
	assert.NotContains(t, s.View(100, 30), "Às vezes:")

	screentest.Press(s, "enter")
	view := s.View(100, 30)
	assert.Contains(t, view, fmt.Sprintf("Às vezes: %d", len(d.Questions)))
	assert.Contains(t, view, "Sim: 0")
}

func TestHistory_Empty(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)

	s := New(deps, c.ID)
	assert.Contains(t, s.View(80, 24), "Carregando")
	screentest.Load(s)
	assert.True(t, strings.Contains(s.View(80, 24), "Nenhuma avaliação"))
}

func TestHistory_UnknownChild(t *testing.T) {
	s := New(screentest.Deps(t), "missing")
	screentest.Load(s)
	assert.Contains(t, s.View(80, 24), "Erro")
}

func TestHistory_Esc(t *testing.T) {
	s := New(screentest.Deps(t), "x")
	_, cmd := screentest.Press(s, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
