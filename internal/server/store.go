package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edlane/edlane-lms/internal/assessment"
	"github.com/edlane/edlane-lms/internal/content"
	"github.com/edlane/edlane-lms/internal/roster"
	"github.com/edlane/edlane-lms/internal/schedule"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the dev backend's persistence layer.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

/* ---------------- tests & questions ---------------- */

const testColumns = `
	t.id, t.name, t.course_id,
	(SELECT COUNT(*) FROM questions q WHERE q.test_id = t.id),
	(SELECT COALESCE(SUM(q.marks), 0) FROM questions q WHERE q.test_id = t.id)`

// ListCourseTests returns every test of a course. The completion flags are
// student-scoped and stay false in this listing.
func (s *Store) ListCourseTests(ctx context.Context, courseID string) ([]assessment.Test, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+testColumns+`
		   FROM tests t WHERE t.course_id=$1 ORDER BY t.created_at`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []assessment.Test{}
	for rows.Next() {
		var t assessment.Test
		if err := rows.Scan(&t.ID, &t.Name, &t.CourseID, &t.QuestionCount, &t.TotalMarks); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListStudentTests returns the tests of the student's batch course, with
// per-student completion and correction flags.
func (s *Store) ListStudentTests(ctx context.Context, studentID string) ([]assessment.Test, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+testColumns+`,
		        EXISTS (SELECT 1 FROM answers a WHERE a.test_id = t.id AND a.student_id = $1),
		        EXISTS (SELECT 1 FROM results r WHERE r.test_id = t.id AND r.student_id = $1)
		   FROM tests t
		   JOIN batches b ON b.course_id = t.course_id
		   JOIN students st ON st.batch_id = b.id
		  WHERE st.id = $1
		  ORDER BY t.created_at`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []assessment.Test{}
	for rows.Next() {
		var t assessment.Test
		if err := rows.Scan(&t.ID, &t.Name, &t.CourseID, &t.QuestionCount, &t.TotalMarks, &t.Completed, &t.Corrected); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetQuestions returns the ordered question set of a test. Correct answers
// never leave the server through this path.
func (s *Store) GetQuestions(ctx context.Context, testID string) ([]assessment.Question, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tests WHERE id=$1`, testID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, kind, options_json, marks
		   FROM questions WHERE test_id=$1 ORDER BY position`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []assessment.Question{}
	for rows.Next() {
		var q assessment.Question
		var optJSON string
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Kind, &optJSON, &q.Marks); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("question %s options: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

/* ---------------- answers & results ---------------- */

// InsertAnswers stores one attempt's records. Each record carries exactly
// one of written_answer / selected_option; whichever is present becomes
// the stored value.
func (s *Store) InsertAnswers(ctx context.Context, records []assessment.AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, rec := range records {
		var value string
		switch {
		case rec.WrittenAnswer != nil:
			value = *rec.WrittenAnswer
		case rec.SelectedOption != nil:
			value = *rec.SelectedOption
		default:
			return fmt.Errorf("record for question %s carries no answer", rec.QuestionID)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO answers (id, test_id, question_id, student_id, value, time_taken, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uuid.NewString(), rec.TestID, rec.QuestionID, rec.StudentID, value, rec.TimeTaken, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SubmittedAnswerRow pairs a stored answer with its question for grading.
type SubmittedAnswerRow struct {
	AnswerID string
	Question assessment.Question
	Value    string
}

func (s *Store) GetSubmittedAnswers(ctx context.Context, testID, studentID string) ([]SubmittedAnswerRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.value, q.id, q.prompt, q.kind, q.options_json, q.marks
		   FROM answers a
		   JOIN questions q ON q.id = a.question_id
		  WHERE a.test_id=$1 AND a.student_id=$2
		  ORDER BY q.position`, testID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SubmittedAnswerRow{}
	for rows.Next() {
		var r SubmittedAnswerRow
		var optJSON string
		if err := rows.Scan(&r.AnswerID, &r.Value, &r.Question.ID, &r.Question.Prompt, &r.Question.Kind, &optJSON, &r.Question.Marks); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optJSON), &r.Question.Options); err != nil {
			return nil, fmt.Errorf("question %s options: %w", r.Question.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FinalizeResult applies per-answer judgements and records the score.
// Re-finalizing overwrites the previous score, so a grader can correct a
// mistake.
func (s *Store) FinalizeResult(ctx context.Context, p assessment.FinalizePayload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range p.Answers {
		res, err := tx.ExecContext(ctx,
			`UPDATE answers SET is_correct=$1 WHERE id=$2 AND test_id=$3 AND student_id=$4`,
			boolToInt(m.IsCorrect), m.AnswerID, p.TestID, p.StudentID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("answer %s: %w", m.AnswerID, ErrNotFound)
		}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO results (test_id, student_id, score, finalized_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (test_id, student_id) DO UPDATE SET score=EXCLUDED.score, finalized_at=EXCLUDED.finalized_at`,
		p.TestID, p.StudentID, p.Score, time.Now().Unix())
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetResults returns the graded per-question breakdown. Answers that were
// never judged read as incorrect.
func (s *Store) GetResults(ctx context.Context, testID, studentID string) ([]assessment.ResultQuestion, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM results WHERE test_id=$1 AND student_id=$2`, testID, studentID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.prompt, q.marks, COALESCE(a.is_correct, 0), a.value, q.correct_answer
		   FROM answers a
		   JOIN questions q ON q.id = a.question_id
		  WHERE a.test_id=$1 AND a.student_id=$2
		  ORDER BY q.position`, testID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []assessment.ResultQuestion{}
	for rows.Next() {
		var r assessment.ResultQuestion
		var correct int
		if err := rows.Scan(&r.QuestionID, &r.Prompt, &r.Marks, &correct, &r.SubmittedAnswer, &r.CorrectAnswer); err != nil {
			return nil, err
		}
		r.IsCorrect = correct != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

/* ---------------- roster ---------------- */

func (s *Store) ListBatches(ctx context.Context) ([]roster.Batch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.name, b.course_id, b.trainer_id, b.status, b.start_date, b.end_date,
		        (SELECT COUNT(*) FROM students st WHERE st.batch_id = b.id)
		   FROM batches b ORDER BY b.start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []roster.Batch{}
	for rows.Next() {
		var b roster.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.CourseID, &b.TrainerID, &b.Status, &b.StartDate, &b.EndDate, &b.StudentCount); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBatch(ctx context.Context, b roster.Batch) (roster.Batch, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = roster.StatusUpcoming
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (id, name, course_id, trainer_id, status, start_date, end_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.Name, b.CourseID, b.TrainerID, b.Status, b.StartDate, b.EndDate)
	return b, err
}

func (s *Store) UpdateBatch(ctx context.Context, b roster.Batch) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE batches SET name=$1, course_id=$2, trainer_id=$3, status=$4, start_date=$5, end_date=$6 WHERE id=$7`,
		b.Name, b.CourseID, b.TrainerID, b.Status, b.StartDate, b.EndDate, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBatch(ctx context.Context, batchID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM batches WHERE id=$1`, batchID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListTrainers(ctx context.Context) ([]roster.Trainer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, expertise FROM trainers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []roster.Trainer{}
	for rows.Next() {
		var t roster.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Expertise); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListBatchStudents(ctx context.Context, batchID string) ([]roster.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, batch_id FROM students WHERE batch_id=$1 ORDER BY name`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []roster.Student{}
	for rows.Next() {
		var st roster.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.BatchID); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

/* ---------------- attendance & webinars ---------------- */

// GetAttendance builds the sheet for a batch session: one entry per
// enrolled student, absent unless a saved mark says otherwise.
func (s *Store) GetAttendance(ctx context.Context, batchID, date string) (schedule.AttendanceSheet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT st.id, st.name, COALESCE(a.present, 0)
		   FROM students st
		   LEFT JOIN attendance a
		     ON a.student_id = st.id AND a.batch_id = st.batch_id AND a.date = $2
		  WHERE st.batch_id = $1
		  ORDER BY st.name`, batchID, date)
	if err != nil {
		return schedule.AttendanceSheet{}, err
	}
	defer rows.Close()

	sheet := schedule.AttendanceSheet{BatchID: batchID, Date: date, Entries: []schedule.AttendanceEntry{}}
	for rows.Next() {
		var e schedule.AttendanceEntry
		var present int
		if err := rows.Scan(&e.StudentID, &e.Name, &present); err != nil {
			return schedule.AttendanceSheet{}, err
		}
		e.Present = present != 0
		sheet.Entries = append(sheet.Entries, e)
	}
	return sheet, rows.Err()
}

// SaveAttendance replaces the marks for one batch and date with the posted
// sheet.
func (s *Store) SaveAttendance(ctx context.Context, sheet schedule.AttendanceSheet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM attendance WHERE batch_id=$1 AND date=$2`, sheet.BatchID, sheet.Date); err != nil {
		return err
	}
	for _, e := range sheet.Entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attendance (batch_id, student_id, date, present) VALUES ($1,$2,$3,$4)`,
			sheet.BatchID, e.StudentID, sheet.Date, boolToInt(e.Present)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListWebinars(ctx context.Context, batchID string) ([]schedule.Webinar, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_id, title, starts_at, duration_min, join_url, status
		   FROM webinars WHERE batch_id=$1 ORDER BY starts_at`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []schedule.Webinar{}
	for rows.Next() {
		var w schedule.Webinar
		if err := rows.Scan(&w.ID, &w.BatchID, &w.Title, &w.StartsAt, &w.DurationMin, &w.JoinURL, &w.Status); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) CreateWebinar(ctx context.Context, w schedule.Webinar) (schedule.Webinar, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Status == "" {
		w.Status = "scheduled"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO webinars (id, batch_id, title, starts_at, duration_min, join_url, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		w.ID, w.BatchID, w.Title, w.StartsAt, w.DurationMin, w.JoinURL, w.Status)
	return w, err
}

func (s *Store) CancelWebinar(ctx context.Context, webinarID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE webinars SET status='cancelled' WHERE id=$1`, webinarID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

/* ---------------- course content ---------------- */

func (s *Store) GetSyllabus(ctx context.Context, courseID string) ([]content.SyllabusUnit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, summary, position FROM syllabus_units WHERE course_id=$1 ORDER BY position`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []content.SyllabusUnit{}
	for rows.Next() {
		var u content.SyllabusUnit
		if err := rows.Scan(&u.ID, &u.Title, &u.Summary, &u.Position); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) GetTopics(ctx context.Context, courseID string) ([]content.Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unit_id, title, body, position FROM topics WHERE course_id=$1 ORDER BY position`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []content.Topic{}
	for rows.Next() {
		var t content.Topic
		if err := rows.Scan(&t.ID, &t.UnitID, &t.Title, &t.Body, &t.Position); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetExercises(ctx context.Context, courseID string) ([]content.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic_id, title, prompt, position FROM exercises WHERE course_id=$1 ORDER BY position`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []content.Exercise{}
	for rows.Next() {
		var e content.Exercise
		if err := rows.Scan(&e.ID, &e.TopicID, &e.Title, &e.Prompt, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
