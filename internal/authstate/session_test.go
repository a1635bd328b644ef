package authstate_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edlane/edlane-lms/internal/authstate"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edlane", "session.json")

	if _, err := authstate.Load(path); !errors.Is(err, authstate.ErrNotLoggedIn) {
		t.Fatalf("Load before save: err = %v, want ErrNotLoggedIn", err)
	}

	want := authstate.Session{Token: "tok", UserID: "u1", Name: "Dev", Role: "student"}
	if err := authstate.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := authstate.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	if err := authstate.Clear(path); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := authstate.Clear(path); err != nil {
		t.Fatalf("Clear on absent file: %v", err)
	}
	if _, err := authstate.Load(path); !errors.Is(err, authstate.ErrNotLoggedIn) {
		t.Fatalf("Load after clear: err = %v, want ErrNotLoggedIn", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "future expiry", token: signedToken(t, now.Add(time.Hour)), want: false},
		{name: "past expiry", token: signedToken(t, now.Add(-time.Hour)), want: true},
		{name: "garbage token", token: "not-a-jwt", want: true},
		{name: "empty token", token: "", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := authstate.Session{Token: tc.token}
			if got := s.Expired(now); got != tc.want {
				t.Fatalf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}
