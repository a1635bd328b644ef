// Package authstate persists the signed-in identity between CLI runs: the
// bearer token plus the user fields the screens need. The record is loaded
// once at startup and handed to whatever needs it; nothing reads it through
// a global.
package authstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// DefaultPath is the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "edlane", "session.json"), nil
}

// Load reads the persisted session. A missing file means ErrNotLoggedIn.
func Load(path string) (Session, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(buf, &s); err != nil {
		return Session{}, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	if s.Token == "" {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

// Save writes the session, owner-readable only.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o600)
}

// Clear removes the persisted session. Clearing an absent session is not
// an error.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Expired reports whether the token's exp claim has passed. Tokens the
// client cannot parse, or that carry no expiry, are treated as expired so
// the user is sent back through login. The signature is not verified here;
// only the server holds the key, and it re-checks every request.
func (s Session) Expired(now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.After(exp.Time)
}
