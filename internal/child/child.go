// Package child defines the persisted child record and its evaluation history.
package child

import (
	"time"

	"github.com/multikids/portage/internal/catalog"
)

// Evaluation is one finalized questionnaire. Evaluations are append-only.
type Evaluation struct {
	Category catalog.Category `json:"category"`
	AgeBand  string           `json:"ageRange"`
	Answers  map[string]int   `json:"answers"`
	Date     time.Time        `json:"date"`
}

// Child is a registered child with evaluations in insertion order, which is
// also chronological order.
type Child struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Age         int          `json:"age"`
	Notes       string       `json:"notes"`
	Evaluations []Evaluation `json:"evaluations"`
}

// EvaluationsIn returns the child's evaluations for one category, oldest first.
func (c Child) EvaluationsIn(category catalog.Category) []Evaluation {
	var out []Evaluation
	for _, e := range c.Evaluations {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// LastEvaluation returns the most recently appended evaluation.
func (c Child) LastEvaluation() (Evaluation, bool) {
	if len(c.Evaluations) == 0 {
		return Evaluation{}, false
	}
	return c.Evaluations[len(c.Evaluations)-1], true
}

// AppendEvaluation returns a copy of the child with e appended.
func (c Child) AppendEvaluation(e Evaluation) Child {
	evals := make([]Evaluation, 0, len(c.Evaluations)+1)
	evals = append(evals, c.Evaluations...)
	c.Evaluations = append(evals, e)
	return c
}
