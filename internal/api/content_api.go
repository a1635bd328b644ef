package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/edlane/edlane-lms/internal/content"
)

// GetSyllabus fetches the ordered syllabus units for a course.
func (c *Client) GetSyllabus(ctx context.Context, courseID string) ([]content.SyllabusUnit, error) {
	path := "/api/course/" + url.PathEscape(courseID) + "/syllabus"
	var out struct {
		Units []content.SyllabusUnit `json:"units"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Units == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing units array")}
	}
	return out.Units, nil
}

// GetTopics fetches the topics of a course.
func (c *Client) GetTopics(ctx context.Context, courseID string) ([]content.Topic, error) {
	path := "/api/course/" + url.PathEscape(courseID) + "/topics"
	var out struct {
		Topics []content.Topic `json:"topics"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Topics == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing topics array")}
	}
	return out.Topics, nil
}

// GetExercises fetches the exercises of a course.
func (c *Client) GetExercises(ctx context.Context, courseID string) ([]content.Exercise, error) {
	path := "/api/course/" + url.PathEscape(courseID) + "/exercises"
	var out struct {
		Exercises []content.Exercise `json:"exercises"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Exercises == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing exercises array")}
	}
	return out.Exercises, nil
}
