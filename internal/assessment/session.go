package assessment

import (
	"context"
	"errors"
	"time"
)

// Phase is the workflow state of a Session.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLoadingQuestions Phase = "loading_questions"
	PhaseAnswering        Phase = "answering"
	PhaseSubmitting       Phase = "submitting"
	PhaseSubmitted        Phase = "submitted"
	PhaseError            Phase = "error"
	PhaseViewingResults   Phase = "viewing_results"
)

var (
	ErrNotAnswering = errors.New("no test in progress")
	ErrNoQuestions  = errors.New("test has no questions")
	ErrUnanswered   = errors.New("all questions must be answered before submitting")
	ErrSubmitting   = errors.New("submission already in progress")
)

// Backend is the slice of the API a student session needs. *api.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	ListStudentTests(ctx context.Context, studentID string) ([]Test, error)
	GetTestQuestions(ctx context.Context, testID string) ([]Question, error)
	SubmitAnswers(ctx context.Context, records []AnswerRecord) error
	GetResults(ctx context.Context, testID, studentID string) ([]ResultQuestion, error)
}

// Session drives one student attempt at a time: pick a test from the
// catalog, answer its questions in any order, submit once everything is
// answered. Selecting a test discards all state from the previous one.
// Nothing is persisted locally; the submission POST is the only durable
// record of an attempt.
type Session struct {
	backend   Backend
	studentID string

	phase     Phase
	catalog   []Test
	test      *Test
	questions []Question
	answers   map[string]any
	index     int
	started   time.Time
	lastErr   string

	now func() time.Time
}

// NewSession wires a session to its backend. now is the clock used for
// elapsed-time calculation; pass time.Now outside of tests.
func NewSession(backend Backend, studentID string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		backend:   backend,
		studentID: studentID,
		phase:     PhaseIdle,
		answers:   map[string]any{},
		now:       now,
	}
}

func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) Catalog() []Test       { return s.catalog }
func (s *Session) Test() *Test           { return s.test }
func (s *Session) Questions() []Question { return s.questions }
func (s *Session) Index() int            { return s.index }
func (s *Session) ErrorMessage() string  { return s.lastErr }

// Current returns the question at the cursor. Only meaningful while
// answering; the zero Question is returned otherwise.
func (s *Session) Current() Question {
	if s.index < 0 || s.index >= len(s.questions) {
		return Question{}
	}
	return s.questions[s.index]
}

// LoadCatalog fetches the tests available to the student. On failure the
// catalog is cleared rather than left stale; the caller re-invokes to retry.
func (s *Session) LoadCatalog(ctx context.Context) error {
	tests, err := s.backend.ListStudentTests(ctx, s.studentID)
	if err != nil {
		s.catalog = nil
		return err
	}
	s.catalog = tests
	return nil
}

// SelectTest starts a fresh attempt at t: cursor to the first question,
// empty answer map, clock started now. A test with no questions is an
// error and never reaches the answering phase.
func (s *Session) SelectTest(ctx context.Context, t Test) error {
	s.phase = PhaseLoadingQuestions
	s.test = &t
	s.questions = nil
	s.answers = map[string]any{}
	s.index = 0
	s.lastErr = ""

	qs, err := s.backend.GetTestQuestions(ctx, t.ID)
	if err != nil {
		s.phase = PhaseError
		s.lastErr = err.Error()
		return err
	}
	if len(qs) == 0 {
		s.phase = PhaseError
		s.lastErr = ErrNoQuestions.Error()
		return ErrNoQuestions
	}
	s.questions = qs
	s.started = s.now()
	s.phase = PhaseAnswering
	return nil
}

// SetAnswer records the answer for a question. The cursor does not move.
func (s *Session) SetAnswer(questionID string, value any) error {
	if s.phase != PhaseAnswering {
		return ErrNotAnswering
	}
	s.answers[questionID] = value
	return nil
}

// Next advances the cursor; a no-op at the last question.
func (s *Session) Next() {
	if s.phase == PhaseAnswering && s.index < len(s.questions)-1 {
		s.index++
	}
}

// Previous moves the cursor back; a no-op at the first question.
func (s *Session) Previous() {
	if s.phase == PhaseAnswering && s.index > 0 {
		s.index--
	}
}

func (s *Session) IsAnswered(questionID string) bool {
	return IsAnswered(s.answers[questionID])
}

func (s *Session) AllAnswered() bool {
	return AllAnswered(s.questions, s.answers)
}

// AnsweredFlags reports answered state per question in order.
func (s *Session) AnsweredFlags() []bool {
	return Answered(s.questions, s.answers)
}

// Submit posts the completed attempt. The explicit user confirmation step
// happens before this is called; declining there means Submit never runs.
// On backend failure the session stays in the answering phase so the
// student can retry.
func (s *Session) Submit(ctx context.Context) error {
	if s.phase == PhaseSubmitting {
		return ErrSubmitting
	}
	if s.phase != PhaseAnswering {
		return ErrNotAnswering
	}
	if !s.AllAnswered() {
		return ErrUnanswered
	}

	elapsed := int64(s.now().Sub(s.started).Seconds())
	records := s.buildPayload(elapsed)

	s.phase = PhaseSubmitting
	if err := s.backend.SubmitAnswers(ctx, records); err != nil {
		s.phase = PhaseAnswering
		s.lastErr = err.Error()
		return err
	}
	s.phase = PhaseSubmitted
	s.lastErr = ""
	return nil
}

func (s *Session) buildPayload(elapsed int64) []AnswerRecord {
	records := make([]AnswerRecord, 0, len(s.questions))
	for _, q := range s.questions {
		rec := AnswerRecord{
			StudentID:  s.studentID,
			QuestionID: q.ID,
			TestID:     s.test.ID,
			Marks:      q.Marks,
			TimeTaken:  elapsed,
		}
		text := answerText(s.answers[q.ID])
		switch q.Kind {
		case KindWritten:
			rec.WrittenAnswer = &text
		case KindMCQ:
			rec.SelectedOption = &text
		}
		records = append(records, rec)
	}
	return records
}

// ViewResults fetches the graded breakdown for t. Results are always
// fetched fresh, so a previously viewed test's rows cannot leak into the
// new view.
func (s *Session) ViewResults(ctx context.Context, t Test) ([]ResultQuestion, Summary, error) {
	rows, err := s.backend.GetResults(ctx, t.ID, s.studentID)
	if err != nil {
		s.lastErr = err.Error()
		return nil, Summary{}, err
	}
	s.phase = PhaseViewingResults
	s.lastErr = ""
	return rows, Summarize(rows), nil
}

// ReturnToList abandons whatever is in progress and reloads the catalog.
func (s *Session) ReturnToList(ctx context.Context) error {
	s.phase = PhaseIdle
	s.test = nil
	s.questions = nil
	s.answers = map[string]any{}
	s.index = 0
	s.lastErr = ""
	return s.LoadCatalog(ctx)
}
