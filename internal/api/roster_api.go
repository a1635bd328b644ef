package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/edlane/edlane-lms/internal/roster"
)

// ListBatches fetches every batch visible to the caller. Filtering is done
// client-side with roster.Apply, matching the admin screens.
func (c *Client) ListBatches(ctx context.Context) ([]roster.Batch, error) {
	const path = "/api/batch"
	var out struct {
		Batches []roster.Batch `json:"batches"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Batches == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing batches array")}
	}
	return out.Batches, nil
}

// CreateBatch registers a new batch and returns it with its assigned ID.
func (c *Client) CreateBatch(ctx context.Context, b roster.Batch) (roster.Batch, error) {
	var out struct {
		Batch roster.Batch `json:"batch"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/batch", b, &out); err != nil {
		return roster.Batch{}, err
	}
	return out.Batch, nil
}

// UpdateBatch replaces a batch's mutable fields.
func (c *Client) UpdateBatch(ctx context.Context, b roster.Batch) error {
	return c.do(ctx, http.MethodPut, "/api/batch/"+url.PathEscape(b.ID), b, nil)
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, batchID string) error {
	return c.do(ctx, http.MethodDelete, "/api/batch/"+url.PathEscape(batchID), nil, nil)
}

// ListTrainers fetches the trainer roster.
func (c *Client) ListTrainers(ctx context.Context) ([]roster.Trainer, error) {
	const path = "/api/trainer"
	var out struct {
		Trainers []roster.Trainer `json:"trainers"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Trainers == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing trainers array")}
	}
	return out.Trainers, nil
}

// ListBatchStudents fetches the students enrolled in one batch.
func (c *Client) ListBatchStudents(ctx context.Context, batchID string) ([]roster.Student, error) {
	path := "/api/batch/" + url.PathEscape(batchID) + "/students"
	var out struct {
		Students []roster.Student `json:"students"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Students == nil {
		return nil, &DecodeError{Endpoint: path, Err: errors.New("missing students array")}
	}
	return out.Students, nil
}
