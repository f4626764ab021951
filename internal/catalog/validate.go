package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when a question set fails validation.
var ErrInvalidCatalog = errors.New("invalid question catalog")

// validate checks that every question is fully populated and that IDs are unique.
// All problems are reported at once.
func validate(qs []Question) error {
	var errs []string
	if len(qs) == 0 {
		errs = append(errs, "catalog has no questions")
	}

	seen := make(map[string]bool, len(qs))
	for i, q := range qs {
		if strings.TrimSpace(q.ID) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty id", i))
		} else if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question id: %q", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(string(q.Category)) == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty category", q.ID))
		}
		if strings.TrimSpace(q.AgeBand) == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty age band", q.ID))
		}
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty text", q.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
