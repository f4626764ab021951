package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAnswer is returned for answer values outside Não/Às vezes/Sim.
var ErrInvalidAnswer = errors.New("invalid answer")

// Answer is the value recorded for a single question.
type Answer int

const (
	AnswerNao     Answer = 0
	AnswerAsVezes Answer = 1
	AnswerSim     Answer = 2
)

// AllAnswers returns the answer options in display order.
func AllAnswers() []Answer {
	return []Answer{AnswerNao, AnswerAsVezes, AnswerSim}
}

// Valid reports whether a is one of the three answer values.
func (a Answer) Valid() bool {
	return a >= AnswerNao && a <= AnswerSim
}

// Label returns the questionnaire label.
func (a Answer) Label() string {
	switch a {
	case AnswerNao:
		return "Não"
	case AnswerAsVezes:
		return "Às vezes"
	case AnswerSim:
		return "Sim"
	default:
		return fmt.Sprintf("Answer(%d)", int(a))
	}
}

func (a Answer) String() string { return a.Label() }

// ParseAnswer accepts the numeric value or a Portuguese/English label.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "nao", "não", "n", "no":
		return AnswerNao, nil
	case "1", "as vezes", "às vezes", "asvezes", "a", "sometimes":
		return AnswerAsVezes, nil
	case "2", "sim", "s", "y", "yes":
		return AnswerSim, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
}
