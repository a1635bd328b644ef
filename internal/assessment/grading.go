package assessment

import (
	"context"
	"errors"
)

var (
	ErrNoSubmission = errors.New("student has no submitted answers for this test")
	ErrNotGrading   = errors.New("grading session not loaded")
	ErrFinalized    = errors.New("result already finalized")
)

// GradingBackend is the slice of the API a grading pass needs.
type GradingBackend interface {
	GetSubmittedAnswers(ctx context.Context, testID, studentID string) ([]SubmittedAnswer, error)
	Finalize(ctx context.Context, p FinalizePayload) error
}

// GradingSession walks one student's submitted answers for one test and
// records a boolean correctness judgement per question. Finalize does not
// insist that every question be judged: questions without an evaluation are
// omitted from the payload and earn nothing. Callers that want to protect
// graders from skipping a question check AllEvaluated first and warn.
type GradingSession struct {
	backend   GradingBackend
	testID    string
	studentID string

	answers     []SubmittedAnswer
	evaluations map[string]bool // keyed by question ID
	index       int
	loaded      bool
	finalized   bool
	finalizing  bool
	lastErr     string
}

func NewGradingSession(backend GradingBackend, testID, studentID string) *GradingSession {
	return &GradingSession{
		backend:     backend,
		testID:      testID,
		studentID:   studentID,
		evaluations: map[string]bool{},
	}
}

// Load fetches the student's submitted answers and resets all judgement
// state.
func (g *GradingSession) Load(ctx context.Context) error {
	rows, err := g.backend.GetSubmittedAnswers(ctx, g.testID, g.studentID)
	if err != nil {
		g.lastErr = err.Error()
		return err
	}
	if len(rows) == 0 {
		g.lastErr = ErrNoSubmission.Error()
		return ErrNoSubmission
	}
	g.answers = rows
	g.evaluations = map[string]bool{}
	g.index = 0
	g.loaded = true
	g.finalized = false
	g.lastErr = ""
	return nil
}

func (g *GradingSession) Answers() []SubmittedAnswer { return g.answers }
func (g *GradingSession) Index() int                 { return g.index }
func (g *GradingSession) ErrorMessage() string       { return g.lastErr }
func (g *GradingSession) Finalized() bool            { return g.finalized }

// Current returns the answer row at the cursor.
func (g *GradingSession) Current() SubmittedAnswer {
	if g.index < 0 || g.index >= len(g.answers) {
		return SubmittedAnswer{}
	}
	return g.answers[g.index]
}

// Next advances the cursor; a no-op at the last answer.
func (g *GradingSession) Next() {
	if g.loaded && g.index < len(g.answers)-1 {
		g.index++
	}
}

// Previous moves the cursor back; a no-op at the first answer.
func (g *GradingSession) Previous() {
	if g.loaded && g.index > 0 {
		g.index--
	}
}

// SetEvaluation records the correctness judgement for a question.
func (g *GradingSession) SetEvaluation(questionID string, correct bool) error {
	if !g.loaded {
		return ErrNotGrading
	}
	if g.finalized {
		return ErrFinalized
	}
	g.evaluations[questionID] = correct
	return nil
}

// Evaluation reports the judgement for a question and whether one exists.
func (g *GradingSession) Evaluation(questionID string) (correct, ok bool) {
	correct, ok = g.evaluations[questionID]
	return
}

// AllEvaluated is true iff every submitted answer has a judgement.
func (g *GradingSession) AllEvaluated() bool {
	for _, a := range g.answers {
		if _, ok := g.evaluations[a.Question.ID]; !ok {
			return false
		}
	}
	return true
}

// Score sums the marks of every question judged correct.
func (g *GradingSession) Score() int {
	score := 0
	for _, a := range g.answers {
		if g.evaluations[a.Question.ID] {
			score += a.Question.Marks
		}
	}
	return score
}

// Payload builds the finalize body. Answers with no evaluation are left
// out entirely.
func (g *GradingSession) Payload() FinalizePayload {
	p := FinalizePayload{
		StudentID: g.studentID,
		TestID:    g.testID,
		Score:     g.Score(),
		Answers:   make([]FinalizeMark, 0, len(g.answers)),
	}
	for _, a := range g.answers {
		correct, ok := g.evaluations[a.Question.ID]
		if !ok {
			continue
		}
		p.Answers = append(p.Answers, FinalizeMark{AnswerID: a.AnswerID, IsCorrect: correct})
	}
	return p
}

// Finalize posts the evaluations and the computed score. On failure the
// session keeps its state so the grader can correct and resubmit.
func (g *GradingSession) Finalize(ctx context.Context) error {
	if !g.loaded {
		return ErrNotGrading
	}
	if g.finalized {
		return ErrFinalized
	}
	if g.finalizing {
		return ErrSubmitting
	}
	g.finalizing = true
	defer func() { g.finalizing = false }()

	if err := g.backend.Finalize(ctx, g.Payload()); err != nil {
		g.lastErr = err.Error()
		return err
	}
	g.finalized = true
	g.lastErr = ""
	return nil
}
