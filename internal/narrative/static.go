package narrative

import (
	"github.com/multikids/portage/internal/report"
	"github.com/multikids/portage/internal/scoring"
)

// Static returns the fixed recommendations for every summary not
// classified Adequado, in report order.
func Static(r report.Report) []Recommendation {
	var out []Recommendation
	for _, s := range r.Summaries {
		if s.Class == scoring.Adequado {
			continue
		}
		out = append(out, staticFor(s))
	}
	return out
}

func staticFor(s report.CategorySummary) Recommendation {
	return Recommendation{
		Category: s.Category,
		Class:    s.Class,
		Summary:  OverviewText,
		Actions:  append([]string(nil), DetailedActions...),
		Source:   SourceStatic,
	}
}
