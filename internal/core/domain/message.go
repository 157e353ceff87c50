package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MessageMaxLength = 1000

	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
)

// ChatMessage is an immutable post in the shared chat room.
type ChatMessage struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizeMessageText trims the text and validates its length.
func NormalizeMessageText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewValidationError("text", "text is required")
	}
	if utf8.RuneCountInString(text) > MessageMaxLength {
		return "", NewValidationError("text", "text must be at most 1000 characters long")
	}
	return text, nil
}

// ClampMessageLimit maps a requested page size into [1, MaxMessageLimit].
func ClampMessageLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultMessageLimit
	case limit > MaxMessageLimit:
		return MaxMessageLimit
	default:
		return limit
	}
}
