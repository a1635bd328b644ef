package assessment

// Question kinds as served by the backend.
const (
	KindMCQ     = "mcq"
	KindWritten = "written"
)

type Test struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CourseID      string `json:"course_id"`
	QuestionCount int    `json:"question_count"`
	TotalMarks    int    `json:"total_marks"`
	Completed     bool   `json:"completed"`
	Corrected     bool   `json:"corrected"`
}

type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Kind    string   `json:"question_type"` // mcq | written
	Options []string `json:"options,omitempty"`
	Marks   int      `json:"marks"`
}

// AnswerRecord is one element of the submission payload. Exactly one of
// WrittenAnswer / SelectedOption is set, matching the question kind; the
// other key is left off the wire entirely rather than sent as null.
type AnswerRecord struct {
	StudentID      string  `json:"student_id"`
	QuestionID     string  `json:"question_id"`
	TestID         string  `json:"test_id"`
	Marks          int     `json:"marks"`
	TimeTaken      int64   `json:"time_taken"`
	WrittenAnswer  *string `json:"written_answer,omitempty"`
	SelectedOption *string `json:"selected_option,omitempty"`
}

type ResultQuestion struct {
	QuestionID      string `json:"question_id"`
	Prompt          string `json:"question"`
	Marks           int    `json:"marks"`
	IsCorrect       bool   `json:"is_correct"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer,omitempty"`
}

// SubmittedAnswer is one row of the grading view: the stored answer plus
// the question it belongs to.
type SubmittedAnswer struct {
	AnswerID string
	Question Question
	Value    string
}

type FinalizeMark struct {
	AnswerID  string `json:"answer_id"`
	IsCorrect bool   `json:"is_correct"`
}

type FinalizePayload struct {
	StudentID string         `json:"student_id"`
	TestID    string         `json:"test_id"`
	Score     int            `json:"score"`
	Answers   []FinalizeMark `json:"answers"`
}
