package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/scoring"
)

// GoalStep is the improvement, in percentage points, aimed for before the
// next evaluation.
const GoalStep = 15.0

// NextEvaluationAfter is the recommended interval between evaluations.
const NextEvaluationAfter = 90 * 24 * time.Hour

// GoalActions are the recommended actions attached to every goal.
var GoalActions = []string{
	"Realizar atividades diárias de estimulação",
	"Participar de sessões de terapia ocupacional",
	"Acompanhamento mensal com profissional especializado",
}

// Goal is an improvement target for a category below the expected level.
type Goal struct {
	Category catalog.Category `json:"category"`
	Current  float64          `json:"current"`
	Target   float64          `json:"target"`
	Ideal    float64          `json:"ideal"`
	Class    scoring.Class    `json:"class"`
	// Progress is Current/Ideal. It is not clamped.
	Progress float64  `json:"progress"`
	Actions  []string `json:"actions"`
}

// NoGoalsText is shown instead of the goal list when every category is Adequado.
const NoGoalsText = "Excelente! Todas as áreas estão dentro dos padrões esperados."

// NoGoalsFollowUp accompanies NoGoalsText.
const NoGoalsFollowUp = "Continue com as atividades de manutenção e monitoramento regular."

// Text is the goal sentence shown to the caregiver.
func (g Goal) Text() string {
	return fmt.Sprintf("Meta: Alcançar %s%% nos próximos 3 meses", FormatPercent(g.Target))
}

// FormatPercent prints a percentage without trailing zeros: 85, 72.5.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Plan is the follow-up schedule shown with the goals.
type Plan struct {
	NextEvaluation time.Time `json:"nextEvaluation"`
	FollowUp       string    `json:"followUp"`
	HomeActivities string    `json:"homeActivities"`
}

// GoalsFor returns one goal per category classified below Adequado, in report order.
func GoalsFor(r Report) []Goal {
	var goals []Goal
	for _, s := range r.Summaries {
		if s.Class == scoring.Adequado {
			continue
		}
		goals = append(goals, Goal{
			Category: s.Category,
			Current:  s.Percentage,
			Target:   math.Min(s.Ideal, s.Percentage+GoalStep),
			Ideal:    s.Ideal,
			Class:    s.Class,
			Progress: s.Percentage / s.Ideal,
			Actions:  append([]string(nil), GoalActions...),
		})
	}
	return goals
}

// FuturePlan returns the follow-up plan relative to now.
func FuturePlan(now time.Time) Plan {
	return Plan{
		NextEvaluation: now.Add(NextEvaluationAfter),
		FollowUp:       "Mensal com profissional especializado",
		HomeActivities: "15-20 minutos diários de estimulação",
	}
}

// Full bundles everything the report views and exporters render for one child.
type Full struct {
	Child       child.Child     `json:"child"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Report      Report          `json:"report"`
	Timeline    []TimelineEntry `json:"timeline"`
	Goals       []Goal          `json:"goals"`
	Plan        Plan            `json:"plan"`
}

// Assemble computes the full report for a child at the given time.
func Assemble(c child.Child, now time.Time) (Full, error) {
	r, err := Build(c)
	if err != nil {
		return Full{}, err
	}
	return Full{
		Child:       c,
		GeneratedAt: now,
		Report:      r,
		Timeline:    Timeline(c.Evaluations),
		Goals:       GoalsFor(r),
		Plan:        FuturePlan(now),
	}, nil
}
