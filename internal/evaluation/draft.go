// Package evaluation holds an in-progress questionnaire until every question
// of its category and age band has been answered.
package evaluation

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/multikids/portage/internal/catalog"
	"github.com/multikids/portage/internal/child"
	"github.com/multikids/portage/internal/scoring"
)

var (
	// ErrIncompleteEvaluation is matched by *IncompleteError.
	ErrIncompleteEvaluation = errors.New("incomplete evaluation")
	// ErrUnknownQuestion is returned when answering a question outside the draft's filter.
	ErrUnknownQuestion = errors.New("question not part of this evaluation")
	// ErrNoQuestions is returned when a category and age band have no questions.
	ErrNoQuestions = errors.New("no questions for category and age band")
)

// IncompleteError lists the questions still unanswered at finalization.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete evaluation: %d unanswered (%s)", len(e.Missing), strings.Join(e.Missing, ", "))
}

// Is lets errors.Is match ErrIncompleteEvaluation.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteEvaluation
}

// Draft is a questionnaire being filled in for one child.
type Draft struct {
	ChildID   string
	Category  catalog.Category
	AgeBand   string
	Questions []catalog.Question

	answers map[string]int
}

// NewDraft starts a questionnaire using the embedded catalog.
func NewDraft(childID string, category catalog.Category, ageBand string) (*Draft, error) {
	return NewDraftFrom(catalog.Default(), childID, category, ageBand)
}

// NewDraftFrom starts a questionnaire over the given catalog.
func NewDraftFrom(cat *catalog.Catalog, childID string, category catalog.Category, ageBand string) (*Draft, error) {
	qs := cat.QuestionsFor(category, ageBand)
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoQuestions, category, ageBand)
	}
	return &Draft{
		ChildID:   childID,
		Category:  category,
		AgeBand:   ageBand,
		Questions: qs,
		answers:   make(map[string]int, len(qs)),
	}, nil
}

func (d *Draft) contains(id string) bool {
	for _, q := range d.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Answer records a value for one question, replacing any earlier answer.
func (d *Draft) Answer(questionID string, a scoring.Answer) error {
	if !d.contains(questionID) {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if !a.Valid() {
		return fmt.Errorf("%w: %d", scoring.ErrInvalidAnswer, int(a))
	}
	d.answers[questionID] = int(a)
	return nil
}

// AnswerOf returns the recorded answer for a question.
func (d *Draft) AnswerOf(questionID string) (scoring.Answer, bool) {
	v, ok := d.answers[questionID]
	return scoring.Answer(v), ok
}

// FillAll answers every question with the same value.
func (d *Draft) FillAll(a scoring.Answer) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", scoring.ErrInvalidAnswer, int(a))
	}
	for _, q := range d.Questions {
		d.answers[q.ID] = int(a)
	}
	return nil
}

// Missing returns the unanswered question IDs in questionnaire order.
func (d *Draft) Missing() []string {
	var missing []string
	for _, q := range d.Questions {
		if _, ok := d.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Answered returns how many questions have an answer.
func (d *Draft) Answered() int {
	return len(d.Questions) - len(d.Missing())
}

// Complete reports whether every question has been answered.
func (d *Draft) Complete() bool {
	return len(d.Missing()) == 0
}

// Answers returns a copy of the recorded answers.
func (d *Draft) Answers() map[string]int {
	return maps.Clone(d.answers)
}

// Finalize turns a complete draft into an evaluation dated now.
func (d *Draft) Finalize(now time.Time) (child.Evaluation, error) {
	if missing := d.Missing(); len(missing) > 0 {
		return child.Evaluation{}, &IncompleteError{Missing: missing}
	}
	answers := make(map[string]int, len(d.Questions))
	for _, q := range d.Questions {
		answers[q.ID] = d.answers[q.ID]
	}
	return child.Evaluation{
		Category: d.Category,
		AgeBand:  d.AgeBand,
		Answers:  answers,
		Date:     now,
	}, nil
}
