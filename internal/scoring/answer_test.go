package scoring

import (
	"errors"
	"testing"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want Answer
	}{
		{"0", AnswerNao},
		{"não", AnswerNao},
		{"Nao", AnswerNao},
		{"n", AnswerNao},
		{"1", AnswerAsVezes},
		{"às vezes", AnswerAsVezes},
		{"As Vezes", AnswerAsVezes},
		{"a", AnswerAsVezes},
		{"2", AnswerSim},
		{" Sim ", AnswerSim},
		{"s", AnswerSim},
		{"yes", AnswerSim},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.in)
		if err != nil {
			t.Errorf("ParseAnswer(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnswer(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAnswer_Invalid(t *testing.T) {
	for _, in := range []string{"", "3", "-1", "talvez"} {
		if _, err := ParseAnswer(in); !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("ParseAnswer(%q) err = %v, want ErrInvalidAnswer", in, err)
		}
	}
}

func TestAnswer_Labels(t *testing.T) {
	want := []string{"Não", "Às vezes", "Sim"}
	for i, a := range AllAnswers() {
		if a.Label() != want[i] {
			t.Errorf("AllAnswers()[%d].Label() = %q, want %q", i, a.Label(), want[i])
		}
		if !a.Valid() {
			t.Errorf("%v not valid", a)
		}
	}
	if Answer(3).Valid() || Answer(-1).Valid() {
		t.Error("out of range answers reported valid")
	}
}
