package assessment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edlane/edlane-lms/internal/assessment"
)

/* ---------------- In-memory fake that satisfies assessment.Backend ---------------- */

type fakeBackend struct {
	tests     []assessment.Test
	questions map[string][]assessment.Question
	results   map[string][]assessment.ResultQuestion

	listErr      error
	questionsErr error
	submitErr    error

	submitted   [][]assessment.AnswerRecord
	listCalls   int
	resultCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		questions: map[string][]assessment.Question{},
		results:   map[string][]assessment.ResultQuestion{},
	}
}

func (f *fakeBackend) ListStudentTests(_ context.Context, _ string) ([]assessment.Test, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tests, nil
}

func (f *fakeBackend) GetTestQuestions(_ context.Context, testID string) ([]assessment.Question, error) {
	if f.questionsErr != nil {
		return nil, f.questionsErr
	}
	return f.questions[testID], nil
}

func (f *fakeBackend) SubmitAnswers(_ context.Context, records []assessment.AnswerRecord) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, records)
	return nil
}

func (f *fakeBackend) GetResults(_ context.Context, testID, _ string) ([]assessment.ResultQuestion, error) {
	f.resultCalls++
	return f.results[testID], nil
}

func seedTwoQuestionTest(fb *fakeBackend) assessment.Test {
	test := assessment.Test{ID: "t1", Name: "Unit One", CourseID: "c1", QuestionCount: 2, TotalMarks: 3}
	fb.tests = []assessment.Test{test}
	fb.questions["t1"] = []assessment.Question{
		{ID: "q1", Prompt: "Pick one", Kind: assessment.KindMCQ, Options: []string{"A", "B"}, Marks: 1},
		{ID: "q2", Prompt: "Explain", Kind: assessment.KindWritten, Marks: 2},
	}
	return test
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

/* ------------------------------------------ Tests ------------------------------------------ */

func TestSelectTestResetsSessionState(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	s := assessment.NewSession(fb, "stu-1", nil)

	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}
	if s.Phase() != assessment.PhaseAnswering {
		t.Fatalf("phase = %s, want answering", s.Phase())
	}
	_ = s.SetAnswer("q1", "A")
	s.Next()
	if s.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.Index())
	}

	// Re-selecting wipes cursor and answers.
	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("re-select: %v", err)
	}
	if s.Index() != 0 {
		t.Fatalf("index after re-select = %d, want 0", s.Index())
	}
	if s.IsAnswered("q1") {
		t.Fatalf("answers survived re-select")
	}
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	s := assessment.NewSession(fb, "stu-1", nil)
	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}

	s.Previous()
	if s.Index() != 0 {
		t.Fatalf("Previous at first question moved cursor to %d", s.Index())
	}
	s.Next()
	s.Next()
	s.Next()
	if s.Index() != 1 {
		t.Fatalf("Next at last question moved cursor to %d", s.Index())
	}
}

func TestSubmitRequiresEveryAnswer(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	s := assessment.NewSession(fb, "stu-1", nil)
	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}

	_ = s.SetAnswer("q1", "A")
	if err := s.Submit(context.Background()); !errors.Is(err, assessment.ErrUnanswered) {
		t.Fatalf("Submit with unanswered question: err = %v, want ErrUnanswered", err)
	}
	if len(fb.submitted) != 0 {
		t.Fatalf("payload was posted despite unanswered question")
	}
	if s.Phase() != assessment.PhaseAnswering {
		t.Fatalf("phase = %s after rejected submit, want answering", s.Phase())
	}
}

func TestSubmitPayloadAndTransition(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := assessment.NewSession(fb, "stu-1", fixedClock(start, 90*time.Second))

	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}
	_ = s.SetAnswer("q1", "A")
	if !s.IsAnswered("q1") || s.AllAnswered() {
		t.Fatalf("after first answer: IsAnswered(q1)=%v AllAnswered=%v", s.IsAnswered("q1"), s.AllAnswered())
	}
	_ = s.SetAnswer("q2", "hello")
	if !s.AllAnswered() {
		t.Fatalf("AllAnswered = false with both questions answered")
	}

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Phase() != assessment.PhaseSubmitted {
		t.Fatalf("phase = %s, want submitted", s.Phase())
	}
	if len(fb.submitted) != 1 {
		t.Fatalf("submissions = %d, want 1", len(fb.submitted))
	}

	records := fb.submitted[0]
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	mcq, written := records[0], records[1]
	if mcq.QuestionID != "q1" || mcq.Marks != 1 || mcq.TestID != "t1" || mcq.StudentID != "stu-1" {
		t.Fatalf("mcq record = %+v", mcq)
	}
	if mcq.SelectedOption == nil || *mcq.SelectedOption != "A" {
		t.Fatalf("mcq selected_option = %v, want A", mcq.SelectedOption)
	}
	if mcq.WrittenAnswer != nil {
		t.Fatalf("mcq record carries written_answer")
	}
	if written.WrittenAnswer == nil || *written.WrittenAnswer != "hello" {
		t.Fatalf("written written_answer = %v, want hello", written.WrittenAnswer)
	}
	if written.SelectedOption != nil {
		t.Fatalf("written record carries selected_option")
	}
	// One clock tick between SelectTest and Submit.
	if mcq.TimeTaken != 90 {
		t.Fatalf("time_taken = %d, want 90", mcq.TimeTaken)
	}
}

func TestSubmitFailureStaysInAnswering(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	s := assessment.NewSession(fb, "stu-1", nil)
	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}
	_ = s.SetAnswer("q1", "A")
	_ = s.SetAnswer("q2", "hello")

	fb.submitErr = errors.New("boom")
	if err := s.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if s.Phase() != assessment.PhaseAnswering {
		t.Fatalf("phase = %s after failed submit, want answering", s.Phase())
	}
	if s.ErrorMessage() == "" {
		t.Fatalf("expected error message retained")
	}

	// Retry after the backend recovers.
	fb.submitErr = nil
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if s.Phase() != assessment.PhaseSubmitted {
		t.Fatalf("phase = %s after retry, want submitted", s.Phase())
	}
}

func TestEmptyQuestionListNeverEntersAnswering(t *testing.T) {
	fb := newFakeBackend()
	empty := assessment.Test{ID: "t-empty", Name: "Hollow"}
	fb.tests = []assessment.Test{empty}

	s := assessment.NewSession(fb, "stu-1", nil)
	err := s.SelectTest(context.Background(), empty)
	if !errors.Is(err, assessment.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if s.Phase() != assessment.PhaseError {
		t.Fatalf("phase = %s, want error", s.Phase())
	}

	// Subsequent accessors must not panic on the empty question list.
	if got := s.Current(); got.ID != "" {
		t.Fatalf("Current() on empty session = %+v", got)
	}
	s.Next()
	s.Previous()
	if err := s.SetAnswer("q1", "A"); !errors.Is(err, assessment.ErrNotAnswering) {
		t.Fatalf("SetAnswer in error phase: err = %v, want ErrNotAnswering", err)
	}
}

func TestReturnToListResetsAndRefetchesCatalog(t *testing.T) {
	fb := newFakeBackend()
	test := seedTwoQuestionTest(fb)
	s := assessment.NewSession(fb, "stu-1", nil)

	if err := s.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if err := s.SelectTest(context.Background(), test); err != nil {
		t.Fatalf("SelectTest: %v", err)
	}
	_ = s.SetAnswer("q1", "A")

	if err := s.ReturnToList(context.Background()); err != nil {
		t.Fatalf("ReturnToList: %v", err)
	}
	if s.Phase() != assessment.PhaseIdle {
		t.Fatalf("phase = %s, want idle", s.Phase())
	}
	if s.Test() != nil || len(s.Questions()) != 0 {
		t.Fatalf("session state survived ReturnToList")
	}
	if fb.listCalls != 2 {
		t.Fatalf("catalog fetches = %d, want 2", fb.listCalls)
	}
}

func TestViewResultsFetchesFreshPerTest(t *testing.T) {
	fb := newFakeBackend()
	fb.results["t1"] = []assessment.ResultQuestion{{QuestionID: "q1", Marks: 2, IsCorrect: true}}
	fb.results["t2"] = []assessment.ResultQuestion{{QuestionID: "q9", Marks: 3, IsCorrect: false}}
	s := assessment.NewSession(fb, "stu-1", nil)

	rows1, sum1, err := s.ViewResults(context.Background(), assessment.Test{ID: "t1"})
	if err != nil {
		t.Fatalf("ViewResults t1: %v", err)
	}
	rows2, sum2, err := s.ViewResults(context.Background(), assessment.Test{ID: "t2"})
	if err != nil {
		t.Fatalf("ViewResults t2: %v", err)
	}
	if rows1[0].QuestionID != "q1" || rows2[0].QuestionID != "q9" {
		t.Fatalf("stale results leaked between tests")
	}
	if sum1.EarnedMarks != 2 || sum2.EarnedMarks != 0 {
		t.Fatalf("summaries = %+v %+v", sum1, sum2)
	}
	if fb.resultCalls != 2 {
		t.Fatalf("result fetches = %d, want 2", fb.resultCalls)
	}
	if s.Phase() != assessment.PhaseViewingResults {
		t.Fatalf("phase = %s, want viewing_results", s.Phase())
	}
}
