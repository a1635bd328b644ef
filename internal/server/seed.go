package server

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SeedDemo loads a small data set so the CLI has something to talk to on a
// fresh database: three users (admin/trainer/student, password equal to the
// username), one course with content, one two-question test, and a batch
// with its schedule. Present rows are left alone.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	users := []struct{ id, username, name, role string }{
		{"u-admin", "admin", "Site Admin", "admin"},
		{"u-trainer", "trainer", "Priya Nair", "trainer"},
		{"u-student", "student", "Dev Student", "student"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.username), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (id, username, password_hash, name, role) VALUES ($1,$2,$3,$4,$5)`,
			u.id, u.username, string(hash), u.name, u.role); err != nil {
			return err
		}
	}

	now := time.Now().Unix()
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO courses (id, name) VALUES ($1,$2)`, []any{"c-go", "Go Fundamentals"}},
		{`INSERT INTO tests (id, course_id, name, created_at) VALUES ($1,$2,$3,$4)`,
			[]any{"t-go-1", "c-go", "Unit 1 Checkpoint", now}},
		{`INSERT INTO questions (id, test_id, prompt, kind, options_json, marks, correct_answer, position)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			[]any{"q-1", "t-go-1", "Which keyword declares a variable?", "mcq", `["var","let","def","dim"]`, 1, "var", 0}},
		{`INSERT INTO questions (id, test_id, prompt, kind, options_json, marks, correct_answer, position)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			[]any{"q-2", "t-go-1", "Explain what a goroutine is.", "written", `[]`, 2, "A lightweight thread managed by the Go runtime.", 1}},
		{`INSERT INTO trainers (id, name, email, expertise) VALUES ($1,$2,$3,$4)`,
			[]any{"tr-1", "Priya Nair", "priya@example.com", "Go, distributed systems"}},
		{`INSERT INTO batches (id, name, course_id, trainer_id, status, start_date, end_date)
		  VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			[]any{"b-1", "Go Fundamentals Jan", "c-go", "tr-1", "active", "2026-01-05", "2026-03-27"}},
		{`INSERT INTO students (id, name, email, batch_id) VALUES ($1,$2,$3,$4)`,
			[]any{"u-student", "Dev Student", "dev@example.com", "b-1"}},
		{`INSERT INTO students (id, name, email, batch_id) VALUES ($1,$2,$3,$4)`,
			[]any{"s-2", "Asha Rao", "asha@example.com", "b-1"}},
		{`INSERT INTO webinars (id, batch_id, title, starts_at, duration_min, join_url, status)
		  VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			[]any{"w-1", "b-1", "Concurrency Q&A", "2026-02-10T17:00:00Z", 60, "https://meet.example.com/w-1", "scheduled"}},
		{`INSERT INTO syllabus_units (id, course_id, title, summary, position) VALUES ($1,$2,$3,$4,$5)`,
			[]any{"su-1", "c-go", "Language Basics", "Syntax, types, control flow.", 0}},
		{`INSERT INTO topics (id, course_id, unit_id, title, body, position) VALUES ($1,$2,$3,$4,$5,$6)`,
			[]any{"tp-1", "c-go", "su-1", "Variables and Types", "var, :=, zero values.", 0}},
		{`INSERT INTO exercises (id, course_id, topic_id, title, prompt, position) VALUES ($1,$2,$3,$4,$5,$6)`,
			[]any{"ex-1", "c-go", "tp-1", "FizzBuzz", "Print 1..100 with the usual substitutions.", 0}},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.q, s.args...); err != nil {
			return err
		}
	}
	return nil
}
