package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/scoring"
)

func TestGoalsFor(t *testing.T) {
	r := Report{Summaries: []CategorySummary{
		{Category: catalog.CategorySocializacao, Percentage: 90, Ideal: 90, Class: scoring.Adequado},
		{Category: catalog.CategoryCognicao, Percentage: 78, Ideal: 85, Class: scoring.Atencao},
		{Category: catalog.CategoryLinguagem, Percentage: 40, Ideal: 80, Class: scoring.Intervencao},
	}}

	goals := GoalsFor(r)
	require.Len(t, goals, 2)

	assert.Equal(t, catalog.CategoryCognicao, goals[0].Category)
	assert.Equal(t, 85.0, goals[0].Target, "target capped at ideal")
	assert.InDelta(t, 78.0/85.0, goals[0].Progress, 1e-9)

	assert.Equal(t, catalog.CategoryLinguagem, goals[1].Category)
	assert.Equal(t, 55.0, goals[1].Target)
	assert.Equal(t, 0.5, goals[1].Progress)
}

func TestGoalsFor_TargetBetweenCurrentAndIdeal(t *testing.T) {
	const ideal = 88.0
	for p := 0.0; p <= 100; p += 2.5 {
		class := scoring.Classify(p, ideal)
		r := Report{Summaries: []CategorySummary{{Percentage: p, Ideal: ideal, Class: class}}}
		goals := GoalsFor(r)
		if class == scoring.Adequado {
			assert.Empty(t, goals, "p=%v", p)
			continue
		}
		require.Len(t, goals, 1)
		g := goals[0]
		assert.LessOrEqual(t, g.Target, ideal, "p=%v", p)
		assert.LessOrEqual(t, g.Target, p+GoalStep, "p=%v", p)
		assert.GreaterOrEqual(t, g.Target, p, "p=%v", p)
	}
}

func TestGoalsFor_ActionsAreCopies(t *testing.T) {
	r := Report{Summaries: []CategorySummary{{Percentage: 10, Ideal: 80, Class: scoring.Intervencao}}}
	g := GoalsFor(r)
	g[0].Actions[0] = "changed"
	assert.NotEqual(t, "changed", GoalActions[0])
}

func TestFuturePlan(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := FuturePlan(now)
	assert.Equal(t, time.Date(2024, 7, 30, 12, 0, 0, 0, time.UTC), p.NextEvaluation)
	assert.Equal(t, "Mensal com profissional especializado", p.FollowUp)
	assert.Equal(t, "15-20 minutos diários de estimulação", p.HomeActivities)
}

func TestAssemble(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := child.Child{ID: "c1", Name: "Ana", Evaluations: []child.Evaluation{
		eval(catalog.CategoryMotricidade, "2", 0, 2, 2, 1, 0, 2),
		eval(catalog.CategorySocializacao, "2", 1, 2, 2, 2, 2, 2),
	}}

	full, err := Assemble(c, now)
	require.NoError(t, err)
	assert.Equal(t, "Ana", full.Child.Name)
	assert.Equal(t, now, full.GeneratedAt)
	assert.Len(t, full.Report.Summaries, 2)
	assert.Len(t, full.Timeline, 2)
	require.Len(t, full.Goals, 1)
	assert.Equal(t, catalog.CategoryMotricidade, full.Goals[0].Category)
	assert.Equal(t, now.Add(NextEvaluationAfter), full.Plan.NextEvaluation)
}

func TestGoalText(t *testing.T) {
	tests := []struct {
		target float64
		want   string
	}{
		{85, "Meta: Alcançar 85% nos próximos 3 meses"},
		{72.5, "Meta: Alcançar 72.5% nos próximos 3 meses"},
	}
	for _, tt := range tests {
		if got := (Goal{Target: tt.target}).Text(); got != tt.want {
			t.Errorf("Text() for %v = %q, want %q", tt.target, got, tt.want)
		}
	}
}
