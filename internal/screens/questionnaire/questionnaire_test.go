package questionnaire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/router"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/screens"
	"github.com/multikids/portage/internal/screens/reportview"
	"github.com/multikids/portage/internal/screens/screentest"
)

// openMotricidade walks to the questions of Motricidade at the band
// suggested for a two year old.
func openMotricidade(t *testing.T) (*QuestionnaireScreen, screens.Deps, string) {
	t.Helper()
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	q := New(deps, c.ID)
	screentest.Load(q)

	screentest.Press(q, "right", "right", "right", "right", "enter")
	require.Equal(t, stepAgeBand, q.step)
	screentest.Press(q, "enter")
	require.Equal(t, stepQuestions, q.step)
	require.NotNil(t, q.Draft())
	return q, deps, c.ID
}

func TestSelectsCategoryAndSuggestedBand(t *testing.T) {
	q, _, _ := openMotricidade(t)
	assert.Equal(t, catalog.CategoryMotricidade, q.Draft().Category)
	assert.Equal(t, "2", q.Draft().AgeBand)
	assert.Len(t, q.Draft().Questions, 5)
	assert.Contains(t, q.View(100, 40), "Motricidade · 2 anos")
}

func TestAnswerAndFinalize(t *testing.T) {
	q, deps, childID := openMotricidade(t)

	screentest.Press(q, "s", "2", "a", "n", "s")
	assert.True(t, q.Draft().Complete())

	_, cmd := screentest.Press(q, "ctrl+s")
	require.NotNil(t, cmd)
	_, next := q.Update(cmd())
	require.NotNil(t, next)

	msg, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected the report to replace the questionnaire")
	assert.IsType(t, &reportview.ReportScreen{}, msg.Screen)

	c, err := deps.Clinic.Child(context.Background(), childID)
	require.NoError(t, err)
	require.Len(t, c.Evaluations, 1)
	assert.Equal(t, map[string]int{"mot-2-1": 2, "mot-2-2": 2, "mot-2-3": 1, "mot-2-4": 0, "mot-2-5": 2},
		c.Evaluations[0].Answers)
	assert.Equal(t, screentest.Now, c.Evaluations[0].Date)
}

func TestIncompleteShowsMissingCount(t *testing.T) {
	q, deps, childID := openMotricidade(t)

	screentest.Press(q, "s")
	_, cmd := screentest.Press(q, "ctrl+s")
	assert.Nil(t, cmd)
	assert.Contains(t, q.View(100, 40), "faltam 4")
	assert.Equal(t, 1, q.cursor, "cursor moves to the first unanswered question")

	c, err := deps.Clinic.Child(context.Background(), childID)
	require.NoError(t, err)
	assert.Empty(t, c.Evaluations)
}

func TestQuickFill(t *testing.T) {
	tests := []struct {
		key  string
		want scoring.Answer
	}{
		{"S", scoring.AnswerSim},
		{"V", scoring.AnswerAsVezes},
		{"N", scoring.AnswerNao},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			q, _, _ := openMotricidade(t)
			screentest.Press(q, tt.key)
			require.True(t, q.Draft().Complete())
			for _, question := range q.Draft().Questions {
				got, _ := q.Draft().AnswerOf(question.ID)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNavigationAndOverwrite(t *testing.T) {
	q, _, _ := openMotricidade(t)

	screentest.Press(q, "s", "up", "n")
	got, ok := q.Draft().AnswerOf("mot-2-1")
	require.True(t, ok)
	assert.Equal(t, scoring.AnswerNao, got)

	screentest.Press(q, "down", "down", "down", "down", "down", "down")
	assert.Equal(t, 4, q.cursor)
}

func TestEscSteps(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Ana", 2)
	q := New(deps, c.ID)
	screentest.Load(q)

	screentest.Press(q, "enter")
	require.Equal(t, stepAgeBand, q.step)

	_, cmd := screentest.Press(q, "esc")
	assert.Nil(t, cmd)
	assert.Equal(t, stepCategory, q.step)

	_, cmd = screentest.Press(q, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestBandSuggestion(t *testing.T) {
	deps := screentest.Deps(t)
	c := screentest.AddChild(t, deps, "Léo", 9)
	q := New(deps, c.ID)
	screentest.Load(q)

	screentest.Press(q, "enter", "enter")
	require.NotNil(t, q.Draft())
	assert.Equal(t, "6", q.Draft().AgeBand)
	assert.Equal(t, catalog.CategorySocializacao, q.Draft().Category)
}
