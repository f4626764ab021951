package report

import (
	"sort"
	"time"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/scoring"
)

// TimelineLimit is the number of evaluations shown on the progress timeline.
const TimelineLimit = 5

// TimelineEntry is one point of the progress timeline.
type TimelineEntry struct {
	Date     time.Time        `json:"date"`
	Category catalog.Category `json:"category"`
	AgeBand  string           `json:"ageRange"`
	Raw      int              `json:"raw"`
	Max      int              `json:"max"`
}

// Percentage returns Raw/Max as a percentage, or 0 for an entry with no answers.
func (e TimelineEntry) Percentage() float64 {
	if e.Max == 0 {
		return 0
	}
	return float64(e.Raw) / float64(e.Max) * 100
}

// Timeline returns the last TimelineLimit evaluations, oldest first. Unlike
// the report summaries, the maximum is derived from the answers actually
// stored on each evaluation, not from the catalog.
func Timeline(evals []child.Evaluation) []TimelineEntry {
	start := max(len(evals)-TimelineLimit, 0)
	return History(evals[start:])
}

// History scores every evaluation the same way as Timeline, oldest first.
func History(evals []child.Evaluation) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(evals))
	for _, e := range evals {
		raw, maxScore := scoring.Tally(e.Answers, answeredIDs(e.Answers))
		entries = append(entries, TimelineEntry{
			Date:     e.Date,
			Category: e.Category,
			AgeBand:  e.AgeBand,
			Raw:      raw,
			Max:      maxScore,
		})
	}
	return entries
}

func answeredIDs(answers map[string]int) []string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
