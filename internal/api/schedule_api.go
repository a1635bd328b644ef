package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/edlane/edlane-lms/internal/schedule"
)

// GetAttendance fetches the attendance sheet for a batch session. The
// backend pre-fills one entry per enrolled student, absent by default when
// no sheet was saved for that date yet.
func (c *Client) GetAttendance(ctx context.Context, batchID, date string) (schedule.AttendanceSheet, error) {
	path := "/api/attendance/batch/" + url.PathEscape(batchID) + "?date=" + url.QueryEscape(date)
	var out struct {
		Sheet *schedule.AttendanceSheet `json:"sheet"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return schedule.AttendanceSheet{}, err
	}
	if out.Sheet == nil {
		return schedule.AttendanceSheet{}, &DecodeError{Endpoint: path, Err: errors.New("missing sheet")}
	}
	return *out.Sheet, nil
}

// SaveAttendance posts a full sheet, replacing any prior marks for that
// batch and date.
func (c *Client) SaveAttendance(ctx context.Context, sheet schedule.AttendanceSheet) error {
	return c.do(ctx, http.MethodPost, "/api/attendance", sheet, nil)
}

// ListWebinars fetches the webinars scheduled for a batch.
func (c *Client) ListWebinars(ctx context.Context, batchID string) ([]schedule.Webinar, error) {
	path := "/api/webinar/batch/" + url.PathEscape(batchID)
	var out struct {
		Webinars []schedule.Webinar `json:"webinars"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Webinars == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing webinars array")}
	}
	return out.Webinars, nil
}

// ScheduleWebinar creates a webinar and returns it with its assigned ID.
func (c *Client) ScheduleWebinar(ctx context.Context, w schedule.Webinar) (schedule.Webinar, error) {
	var out struct {
		Webinar schedule.Webinar `json:"webinar"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/webinar", w, &out); err != nil {
		return schedule.Webinar{}, err
	}
	return out.Webinar, nil
}

// CancelWebinar marks a webinar cancelled.
func (c *Client) CancelWebinar(ctx context.Context, webinarID string) error {
	return c.do(ctx, http.MethodDelete, "/api/webinar/"+url.PathEscape(webinarID), nil, nil)
}
