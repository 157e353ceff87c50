package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// TokenScheme is the keyword expected before the key in the Authorization header.
	TokenScheme = "Token"

	tokenKeyBytes = 40

	// TokenKeyLength is the length of a hex-encoded key.
	TokenKeyLength = tokenKeyBytes * 2
)

// Token is an opaque bearer credential bound to one account.
type Token struct {
	Key       string    `json:"key"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTokenKey returns a fresh key read from the system CSPRNG.
func NewTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
