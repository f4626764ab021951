// Package scoring turns questionnaire answers into percentages and
// classifies them against an expected value.
package scoring

import (
	"errors"
	"math"
)

// ErrInvalidInput is returned when a score is requested over an empty question filter.
var ErrInvalidInput = errors.New("invalid input: no questions to score")

// Result is the outcome of scoring one evaluation.
type Result struct {
	Raw        int
	Max        int
	Percentage float64
}

// Rounded returns the percentage rounded to one decimal place, as displayed.
func (r Result) Rounded() float64 {
	return Round1(r.Percentage)
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Tally sums the answers for the given question IDs. Missing answers count as
// zero and the maximum is two points per ID. It never fails; an empty ID list
// yields 0/0.
func Tally(answers map[string]int, questionIDs []string) (raw, maxScore int) {
	for _, id := range questionIDs {
		raw += answers[id]
	}
	return raw, len(questionIDs) * int(AnswerSim)
}

// Score computes raw, max and percentage for the given question IDs.
func Score(answers map[string]int, questionIDs []string) (Result, error) {
	if len(questionIDs) == 0 {
		return Result{}, ErrInvalidInput
	}
	raw, maxScore := Tally(answers, questionIDs)
	return Result{
		Raw:        raw,
		Max:        maxScore,
		Percentage: float64(raw) / float64(maxScore) * 100,
	}, nil
}
