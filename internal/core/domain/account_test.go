package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateUsername(strings.Repeat("ж", UsernameMaxLength)); err != nil {
		t.Fatalf("150 runes must be accepted: %v", err)
	}
	if err := ValidateUsername(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := ValidateUsername(strings.Repeat("a", UsernameMaxLength+1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]string{
		"alice":      "alice",
		" alice ":    "alice",
		"\talice\n": "alice",
		"al ice":     "al ice",
		"   ":        "",
	}
	for in, want := range cases {
		if got := NormalizeUsername(in); got != want {
			t.Fatalf("NormalizeUsername(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("hunter22"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidatePassword("short")
	var derr *Error
	if !errors.As(err, &derr) || derr.Field != "password" || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAccount_Profile(t *testing.T) {
	now := time.Now().UTC()
	a := &Account{ID: "1", Username: "alice", PasswordHash: "secret", CreatedAt: now}

	p := a.Profile()
	if p.ID != "1" || p.Username != "alice" || !p.CreatedAt.Equal(now) {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestErrorKinds(t *testing.T) {
	cases := map[*Error]error{
		ErrInvalidCredentials: ErrAuthenticationFailed,
		ErrInvalidTokenHeader: ErrAuthenticationFailed,
		ErrInvalidToken:       ErrAuthenticationFailed,
		ErrUsernameTaken:      ErrConflict,
		ErrAccountNotFound:    ErrNotFound,
		ErrNilAccount:         ErrInvalidArgument,
	}
	for err, kind := range cases {
		if !errors.Is(err, kind) {
			t.Fatalf("%q should be of kind %q", err, kind)
		}
	}
	if ErrInvalidTokenHeader.Error() == ErrInvalidToken.Error() {
		t.Fatalf("malformed header and unknown key must be reported distinctly")
	}
}
