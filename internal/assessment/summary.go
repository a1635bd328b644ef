package assessment

import "fmt"

// Summary aggregates a graded result set.
type Summary struct {
	TotalMarks  int
	EarnedMarks int
}

func Summarize(rows []ResultQuestion) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalMarks += r.Marks
		if r.IsCorrect {
			s.EarnedMarks += r.Marks
		}
	}
	return s
}

// Percent formats the score as a percentage with one decimal, e.g. "40.0".
// A result set whose questions carry zero total marks has no meaningful
// percentage and reports "N/A" instead of dividing by zero.
func (s Summary) Percent() string {
	if s.TotalMarks == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(s.EarnedMarks)/float64(s.TotalMarks)*100)
}
