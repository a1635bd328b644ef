package assessment_test

import (
	"testing"

	"github.com/edlane/edlane-lms/internal/assessment"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		rows        []assessment.ResultQuestion
		wantTotal   int
		wantEarned  int
		wantPercent string
	}{
		{
			name: "mixed results",
			rows: []assessment.ResultQuestion{
				{Marks: 2, IsCorrect: true},
				{Marks: 3, IsCorrect: false},
			},
			wantTotal:   5,
			wantEarned:  2,
			wantPercent: "40.0",
		},
		{
			name: "all correct",
			rows: []assessment.ResultQuestion{
				{Marks: 1, IsCorrect: true},
				{Marks: 2, IsCorrect: true},
			},
			wantTotal:   3,
			wantEarned:  3,
			wantPercent: "100.0",
		},
		{
			name:        "empty result set",
			rows:        nil,
			wantTotal:   0,
			wantEarned:  0,
			wantPercent: "N/A",
		},
		{
			name: "zero-mark questions",
			rows: []assessment.ResultQuestion{
				{Marks: 0, IsCorrect: true},
				{Marks: 0, IsCorrect: false},
			},
			wantTotal:   0,
			wantEarned:  0,
			wantPercent: "N/A",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum := assessment.Summarize(tc.rows)
			if sum.TotalMarks != tc.wantTotal || sum.EarnedMarks != tc.wantEarned {
				t.Fatalf("Summarize = %+v, want total %d earned %d", sum, tc.wantTotal, tc.wantEarned)
			}
			if got := sum.Percent(); got != tc.wantPercent {
				t.Fatalf("Percent() = %q, want %q", got, tc.wantPercent)
			}
		})
	}
}
