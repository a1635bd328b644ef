package assessment_test

import (
	"testing"

	"github.com/edlane/edlane-lms/internal/assessment"
)

func TestIsAnswered(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{name: "nil", v: nil, want: false},
		{name: "empty string", v: "", want: false},
		{name: "whitespace only", v: "   \t\n", want: false},
		{name: "empty string slice", v: []string{}, want: false},
		{name: "empty any slice", v: []any{}, want: false},
		{name: "plain string", v: "A", want: true},
		{name: "padded string", v: "  hello  ", want: true},
		{name: "non-empty string slice", v: []string{"A"}, want: true},
		{name: "non-empty any slice", v: []any{"A"}, want: true},
		{name: "unsupported type", v: 42, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := assessment.IsAnswered(tc.v); got != tc.want {
				t.Fatalf("IsAnswered(%#v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestAllAnsweredMatchesPerQuestionFlags(t *testing.T) {
	questions := []assessment.Question{
		{ID: "q1", Kind: assessment.KindMCQ, Options: []string{"A", "B"}, Marks: 1},
		{ID: "q2", Kind: assessment.KindWritten, Marks: 2},
		{ID: "q3", Kind: assessment.KindWritten, Marks: 3},
	}
	answers := map[string]any{"q1": "A", "q2": "hello"}

	flags := assessment.Answered(questions, answers)
	wantFlags := []bool{true, true, false}
	for i := range wantFlags {
		if flags[i] != wantFlags[i] {
			t.Fatalf("Answered[%d] = %v, want %v", i, flags[i], wantFlags[i])
		}
	}
	if assessment.AllAnswered(questions, answers) {
		t.Fatalf("AllAnswered = true with one question unanswered")
	}

	answers["q3"] = "done"
	if !assessment.AllAnswered(questions, answers) {
		t.Fatalf("AllAnswered = false with every question answered")
	}
}
