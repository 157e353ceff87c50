package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	UsernameMaxLength = 150
	PasswordMinLength = 8
)

// Account is a registered member identity.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the read-only projection of an Account exposed to its owner.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile projects the account without its credentials.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
	}
}

// NormalizeUsername strips surrounding whitespace. Every username is
// normalized before it is validated, stored or looked up.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ValidateUsername checks the shape of a username. Uniqueness is the caller's job.
func ValidateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "username is required")
	}
	if utf8.RuneCountInString(username) > UsernameMaxLength {
		return NewValidationError("username", "username must be at most 150 characters long")
	}
	return nil
}

// ValidatePassword checks a raw password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "password is required")
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return NewValidationError("password", "password must be at least 8 characters long")
	}
	return nil
}
