package content

// Read-only course content, as served per course.

type SyllabusUnit struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	Position int    `json:"position"`
}

type Topic struct {
	ID       string `json:"id"`
	UnitID   string `json:"unit_id,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Position int    `json:"position"`
}

type Exercise struct {
	ID       string `json:"id"`
	TopicID  string `json:"topic_id,omitempty"`
	Title    string `json:"title"`
	Prompt   string `json:"prompt"`
	Position int    `json:"position"`
}
