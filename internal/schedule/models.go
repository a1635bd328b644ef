package schedule

// AttendanceEntry is one student's presence mark for a batch session.
type AttendanceEntry struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name,omitempty"`
	Present   bool   `json:"present"`
}

// AttendanceSheet is a full batch session: one entry per enrolled student.
type AttendanceSheet struct {
	BatchID string            `json:"batch_id"`
	Date    string            `json:"date"` // ISO 2006-01-02
	Entries []AttendanceEntry `json:"entries"`
}

// PresentCount tallies the marked-present entries.
func (s AttendanceSheet) PresentCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.Present {
			n++
		}
	}
	return n
}

type Webinar struct {
	ID          string `json:"id"`
	BatchID     string `json:"batch_id"`
	Title       string `json:"title"`
	StartsAt    string `json:"starts_at"` // RFC 3339
	DurationMin int    `json:"duration_min"`
	JoinURL     string `json:"join_url,omitempty"`
	Status      string `json:"status"` // scheduled | cancelled | completed
}
