package server_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/edlane/edlane-lms/internal/assessment"
	"github.com/edlane/edlane-lms/internal/schedule"
	"github.com/edlane/edlane-lms/internal/server"
)

func newTestStore(t *testing.T) *server.Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	db, err := server.OpenDB(context.Background(), server.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := server.SeedDemo(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return server.NewStore(db)
}

func strptr(s string) *string { return &s }

func TestStudentTestListingReflectsProgress(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tests, err := st.ListStudentTests(ctx, "u-student")
	if err != nil {
		t.Fatalf("ListStudentTests: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("tests = %d, want 1", len(tests))
	}
	got := tests[0]
	if got.QuestionCount != 2 || got.TotalMarks != 3 {
		t.Fatalf("test = %+v", got)
	}
	if got.Completed || got.Corrected {
		t.Fatalf("fresh test already flagged: %+v", got)
	}

	records := []assessment.AnswerRecord{
		{StudentID: "u-student", QuestionID: "q-1", TestID: "t-go-1", Marks: 1, TimeTaken: 30, SelectedOption: strptr("var")},
		{StudentID: "u-student", QuestionID: "q-2", TestID: "t-go-1", Marks: 2, TimeTaken: 30, WrittenAnswer: strptr("a lightweight thread")},
	}
	if err := st.InsertAnswers(ctx, records); err != nil {
		t.Fatalf("InsertAnswers: %v", err)
	}

	tests, err = st.ListStudentTests(ctx, "u-student")
	if err != nil {
		t.Fatalf("ListStudentTests after submit: %v", err)
	}
	if !tests[0].Completed || tests[0].Corrected {
		t.Fatalf("after submit: %+v", tests[0])
	}
}

func TestQuestionsHideCorrectAnswers(t *testing.T) {
	st := newTestStore(t)
	qs, err := st.GetQuestions(context.Background(), "t-go-1")
	if err != nil {
		t.Fatalf("GetQuestions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}
	if qs[0].Kind != assessment.KindMCQ || len(qs[0].Options) != 4 {
		t.Fatalf("q1 = %+v", qs[0])
	}
	if qs[1].Kind != assessment.KindWritten {
		t.Fatalf("q2 = %+v", qs[1])
	}

	if _, err := st.GetQuestions(context.Background(), "no-such-test"); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("missing test err = %v, want ErrNotFound", err)
	}
}

func TestSubmitGradeFinalizeResultFlow(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Results are unavailable before finalization.
	if _, err := st.GetResults(ctx, "t-go-1", "u-student"); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("pre-finalize results err = %v, want ErrNotFound", err)
	}

	records := []assessment.AnswerRecord{
		{StudentID: "u-student", QuestionID: "q-1", TestID: "t-go-1", Marks: 1, TimeTaken: 75, SelectedOption: strptr("var")},
		{StudentID: "u-student", QuestionID: "q-2", TestID: "t-go-1", Marks: 2, TimeTaken: 75, WrittenAnswer: strptr("wrong answer")},
	}
	if err := st.InsertAnswers(ctx, records); err != nil {
		t.Fatalf("InsertAnswers: %v", err)
	}

	rows, err := st.GetSubmittedAnswers(ctx, "t-go-1", "u-student")
	if err != nil {
		t.Fatalf("GetSubmittedAnswers: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("submitted rows = %d, want 2", len(rows))
	}
	if rows[0].Question.ID != "q-1" || rows[0].Value != "var" {
		t.Fatalf("row[0] = %+v", rows[0])
	}

	p := assessment.FinalizePayload{
		StudentID: "u-student",
		TestID:    "t-go-1",
		Score:     1,
		Answers: []assessment.FinalizeMark{
			{AnswerID: rows[0].AnswerID, IsCorrect: true},
			{AnswerID: rows[1].AnswerID, IsCorrect: false},
		},
	}
	if err := st.FinalizeResult(ctx, p); err != nil {
		t.Fatalf("FinalizeResult: %v", err)
	}

	results, err := st.GetResults(ctx, "t-go-1", "u-student")
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if !results[0].IsCorrect || results[1].IsCorrect {
		t.Fatalf("correctness = %v %v", results[0].IsCorrect, results[1].IsCorrect)
	}
	if results[1].SubmittedAnswer != "wrong answer" || results[1].CorrectAnswer == "" {
		t.Fatalf("result row = %+v", results[1])
	}

	sum := assessment.Summarize(results)
	if sum.TotalMarks != 3 || sum.EarnedMarks != 1 {
		t.Fatalf("summary = %+v", sum)
	}

	// Re-finalizing overwrites the verdicts.
	p.Score = 3
	p.Answers[1].IsCorrect = true
	if err := st.FinalizeResult(ctx, p); err != nil {
		t.Fatalf("re-finalize: %v", err)
	}
	results, _ = st.GetResults(ctx, "t-go-1", "u-student")
	if !results[1].IsCorrect {
		t.Fatalf("verdict not overwritten: %+v", results[1])
	}
}

func TestFinalizeUnknownAnswerFails(t *testing.T) {
	st := newTestStore(t)
	p := assessment.FinalizePayload{
		StudentID: "u-student",
		TestID:    "t-go-1",
		Score:     1,
		Answers:   []assessment.FinalizeMark{{AnswerID: "bogus", IsCorrect: true}},
	}
	if err := st.FinalizeResult(context.Background(), p); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAttendanceRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sheet, err := st.GetAttendance(ctx, "b-1", "2026-01-12")
	if err != nil {
		t.Fatalf("GetAttendance: %v", err)
	}
	if len(sheet.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(sheet.Entries))
	}
	if sheet.PresentCount() != 0 {
		t.Fatalf("fresh sheet has present marks")
	}

	sheet.Entries[0].Present = true
	if err := st.SaveAttendance(ctx, sheet); err != nil {
		t.Fatalf("SaveAttendance: %v", err)
	}

	saved, err := st.GetAttendance(ctx, "b-1", "2026-01-12")
	if err != nil {
		t.Fatalf("GetAttendance after save: %v", err)
	}
	if saved.PresentCount() != 1 {
		t.Fatalf("present = %d, want 1", saved.PresentCount())
	}

	// Different date starts blank again.
	other, err := st.GetAttendance(ctx, "b-1", "2026-01-13")
	if err != nil {
		t.Fatalf("GetAttendance other date: %v", err)
	}
	if other.PresentCount() != 0 {
		t.Fatalf("marks leaked across dates")
	}
}

func TestWebinarLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateWebinar(ctx, schedule.Webinar{
		BatchID: "b-1", Title: "Testing in Go", StartsAt: "2026-03-02T17:00:00Z", DurationMin: 45,
	})
	if err != nil {
		t.Fatalf("CreateWebinar: %v", err)
	}
	if created.ID == "" || created.Status != "scheduled" {
		t.Fatalf("created = %+v", created)
	}

	if err := st.CancelWebinar(ctx, created.ID); err != nil {
		t.Fatalf("CancelWebinar: %v", err)
	}
	webinars, err := st.ListWebinars(ctx, "b-1")
	if err != nil {
		t.Fatalf("ListWebinars: %v", err)
	}
	found := false
	for _, w := range webinars {
		if w.ID == created.ID {
			found = true
			if w.Status != "cancelled" {
				t.Fatalf("status = %s, want cancelled", w.Status)
			}
		}
	}
	if !found {
		t.Fatalf("created webinar missing from listing")
	}

	if err := st.CancelWebinar(ctx, "bogus"); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("cancel bogus err = %v, want ErrNotFound", err)
	}
}
