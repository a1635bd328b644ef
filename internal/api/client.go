// Package api is the shared HTTP client for the LMS backend. Every call
// takes a context, carries the bearer credential, and checks the response
// envelope before trusting the payload. Responses whose shape does not
// match the wire contract fail fast with a DecodeError instead of
// defaulting to empty collections.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a server-reported logical failure: the backend answered, but
// flagged the request as unsuccessful.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (HTTP %d): %s", e.StatusCode, e.Message)
}

// DecodeError marks a response that was not valid JSON or did not match
// the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

// envelope is the success/status discriminator every response carries.
// Some endpoints use a boolean "success", others a string "status".
type envelope struct {
	Success *bool  `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e envelope) ok(httpCode int) bool {
	if e.Success != nil {
		return *e.Success
	}
	if e.Status != "" {
		return strings.EqualFold(e.Status, "success") || strings.EqualFold(e.Status, "ok")
	}
	return httpCode >= 200 && httpCode < 300
}

// do runs one request/response cycle. out, when non-nil, receives the full
// body after the envelope check passes. No retries: every failure is
// terminal for the attempt and surfaced to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	if !env.ok(resp.StatusCode) {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &DecodeError{Endpoint: path, Err: err}
		}
	}
	return nil
}
