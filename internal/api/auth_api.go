package api

import (
	"context"
	"errors"
	"net/http"
)

// LoginResult is the credential blob the client persists between runs.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Login exchanges credentials for a bearer token. The client's Token field
// is not updated automatically; callers persist the result and construct
// authenticated clients from it.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	const path = "/api/auth/login"
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return LoginResult{}, err
	}
	if out.Token == "" {
		return LoginResult{}, &DecodeError{Endpoint: path, Err: errors.New("missing token")}
	}
	return LoginResult{
		Token:  out.Token,
		UserID: out.User.ID,
		Name:   out.User.Name,
		Role:   out.User.Role,
	}, nil
}
