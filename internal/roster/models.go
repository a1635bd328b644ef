package roster

// Batch statuses as served by the backend.
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Dates are ISO "2006-01-02" strings throughout; they compare correctly
// lexicographically, which the filter relies on.
type Batch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CourseID     string `json:"course_id"`
	TrainerID    string `json:"trainer_id"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StudentCount int    `json:"student_count"`
}

type Trainer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Expertise string `json:"expertise,omitempty"`
}

type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	BatchID string `json:"batch_id,omitempty"`
}
