// Package report aggregates a child's evaluation history into per-category
// summaries, a recent-evaluation timeline and intervention goals.
package report

import (
	"fmt"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/scoring"
	"github.com/multikids/portage/internal/standards"
)

// CategorySummary is the current standing of one category, taken from its
// most recent evaluation.
type CategorySummary struct {
	Category   catalog.Category `json:"category"`
	AgeBand    string           `json:"ageRange"`
	Raw        int              `json:"raw"`
	Max        int              `json:"max"`
	Percentage float64          `json:"percentage"`
	Ideal      float64          `json:"ideal"`
	Class      scoring.Class    `json:"class"`
}

// CategoryCount is the number of evaluations recorded for a category.
type CategoryCount struct {
	Category catalog.Category `json:"category"`
	Count    int              `json:"count"`
}

// Report is the overview of a child's development.
type Report struct {
	Summaries        []CategorySummary `json:"summaries"`
	TotalEvaluations int               `json:"totalEvaluations"`
	CategoryCounts   []CategoryCount   `json:"categoryCounts"`
	Average          float64           `json:"average"`
}

// Summary returns the summary for a category, if the child has been evaluated in it.
func (r Report) Summary(category catalog.Category) (CategorySummary, bool) {
	for _, s := range r.Summaries {
		if s.Category == category {
			return s, true
		}
	}
	return CategorySummary{}, false
}

// Build computes the report against the embedded catalog.
func Build(c child.Child) (Report, error) {
	return BuildFrom(catalog.Default(), c)
}

// BuildFrom computes the report against the given catalog. For every catalog
// category with at least one evaluation, the most recently appended
// evaluation is scored over the catalog's questions for its age band,
// regardless of how it compares to earlier ones.
func BuildFrom(cat *catalog.Catalog, c child.Child) (Report, error) {
	r := Report{TotalEvaluations: len(c.Evaluations)}

	var sum float64
	for _, category := range cat.Categories() {
		evals := c.EvaluationsIn(category)
		r.CategoryCounts = append(r.CategoryCounts, CategoryCount{Category: category, Count: len(evals)})
		if len(evals) == 0 {
			continue
		}

		latest := evals[len(evals)-1]
		res, err := scoring.Score(latest.Answers, cat.QuestionIDs(category, latest.AgeBand))
		if err != nil {
			return Report{}, fmt.Errorf("score %s/%s: %w", category, latest.AgeBand, err)
		}

		ideal := standards.IdealScore(category, latest.AgeBand)
		s := CategorySummary{
			Category:   category,
			AgeBand:    latest.AgeBand,
			Raw:        res.Raw,
			Max:        res.Max,
			Percentage: res.Rounded(),
			Ideal:      ideal,
			Class:      scoring.Classify(res.Percentage, ideal),
		}
		r.Summaries = append(r.Summaries, s)
		sum += s.Percentage
	}

	if len(r.Summaries) > 0 {
		r.Average = sum / float64(len(r.Summaries))
	}
	return r, nil
}
