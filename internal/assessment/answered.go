package assessment

import "strings"

// IsAnswered reports whether v counts as a real answer. Nil values, empty
// or whitespace-only strings, and empty slices are all "unanswered";
// any other string or non-empty slice counts.
func IsAnswered(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return false
	}
}

// Answered returns the per-question answered flags in question order, for
// stepper-style progress rendering.
func Answered(questions []Question, answers map[string]any) []bool {
	out := make([]bool, len(questions))
	for i, q := range questions {
		out[i] = IsAnswered(answers[q.ID])
	}
	return out
}

// AllAnswered is true iff every question has a real answer.
func AllAnswered(questions []Question, answers map[string]any) bool {
	for _, q := range questions {
		if !IsAnswered(answers[q.ID]) {
			return false
		}
	}
	return true
}

// answerText flattens an answer value to the string the wire format carries.
func answerText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
