package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/edlane/edlane-lms/internal/assessment"
)

// ListCourseTests fetches the test catalog for a course.
func (c *Client) ListCourseTests(ctx context.Context, courseID string) ([]assessment.Test, error) {
	path := "/api/test/course/" + url.PathEscape(courseID)
	var out struct {
		Tests []assessment.Test `json:"tests"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Tests == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing tests array")}
	}
	return out.Tests, nil
}

// ListStudentTests fetches the tests available to one student across their
// enrolled courses.
func (c *Client) ListStudentTests(ctx context.Context, studentID string) ([]assessment.Test, error) {
	path := "/api/test/student/" + url.PathEscape(studentID)
	var out struct {
		Tests []assessment.Test `json:"tests"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Tests == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing tests array")}
	}
	return out.Tests, nil
}

// GetTestQuestions fetches the full ordered question set of a test.
func (c *Client) GetTestQuestions(ctx context.Context, testID string) ([]assessment.Question, error) {
	path := "/api/test/" + url.PathEscape(testID) + "/questions"
	var out struct {
		Questions []assessment.Question `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Questions == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing questions array")}
	}
	return out.Questions, nil
}

// SubmitAnswers posts a completed attempt, one record per question.
func (c *Client) SubmitAnswers(ctx context.Context, records []assessment.AnswerRecord) error {
	return c.do(ctx, http.MethodPost, "/api/answers", records, nil)
}

// GetResults fetches the graded per-question breakdown for one student's
// attempt at a test.
func (c *Client) GetResults(ctx context.Context, testID, studentID string) ([]assessment.ResultQuestion, error) {
	path := "/api/test/" + url.PathEscape(testID) + "/student/" + url.PathEscape(studentID) + "/result"
	var out struct {
		Questions []assessment.ResultQuestion `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Questions == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing questions array")}
	}
	return out.Questions, nil
}

type submittedAnswerRow struct {
	Question        assessment.Question `json:"question"`
	SubmittedAnswer struct {
		ID     string `json:"id"`
		Answer string `json:"answer"`
	} `json:"submitted_answer"`
}

// GetSubmittedAnswers fetches the student's stored answers for grading.
func (c *Client) GetSubmittedAnswers(ctx context.Context, testID, studentID string) ([]assessment.SubmittedAnswer, error) {
	path := "/api/test/" + url.PathEscape(testID) + "/student/" + url.PathEscape(studentID) + "/answers"
	var out struct {
		Data []submittedAnswerRow `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing data array")}
	}
	rows := make([]assessment.SubmittedAnswer, 0, len(out.Data))
	for _, r := range out.Data {
		rows = append(rows, assessment.SubmittedAnswer{
			AnswerID: r.SubmittedAnswer.ID,
			Question: r.Question,
			Value:    r.SubmittedAnswer.Answer,
		})
	}
	return rows, nil
}

// Finalize posts a grading pass: per-answer judgements plus the computed
// score.
func (c *Client) Finalize(ctx context.Context, p assessment.FinalizePayload) error {
	path := "/api/results/finalize/" + url.PathEscape(p.TestID) + "/mark_and_finalize"
	return c.do(ctx, http.MethodPost, path, p, nil)
}
