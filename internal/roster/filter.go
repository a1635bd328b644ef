package roster

import "strings"

// Filter holds the batch-list criteria. Zero values mean "no constraint",
// so the zero Filter matches everything. Criteria combine with AND.
type Filter struct {
	Query       string // case-insensitive substring of the batch name
	CourseID    string
	TrainerID   string
	Status      string
	StartsAfter string // ISO date, inclusive
	EndsBefore  string // ISO date, inclusive
}

// Match reports whether b satisfies every set criterion.
func (f Filter) Match(b Batch) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.CourseID != "" && b.CourseID != f.CourseID {
		return false
	}
	if f.TrainerID != "" && b.TrainerID != f.TrainerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.StartsAfter != "" && b.StartDate < f.StartsAfter {
		return false
	}
	if f.EndsBefore != "" && b.EndDate > f.EndsBefore {
		return false
	}
	return true
}

// Apply returns the batches matching f, preserving input order. The input
// slice is never mutated.
func Apply(batches []Batch, f Filter) []Batch {
	out := make([]Batch, 0, len(batches))
	for _, b := range batches {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}
