package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/memberchat/member-service/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("hash must differ from the raw password")
	}
	if !h.Verify("hunter22", hash) {
		t.Fatalf("Verify must accept the original password")
	}
	if h.Verify("hunter23", hash) {
		t.Fatalf("Verify must reject a different password")
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("hunter22")
	b, _ := h.Hash("hunter22")
	if a == b {
		t.Fatalf("expected distinct salted hashes")
	}
}

func TestBcryptHasher_EmptyInputs(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if _, err := h.Hash(""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if h.Verify("", "whatever") || h.Verify("x", "") {
		t.Fatalf("empty inputs must never verify")
	}
	if h.Verify("x", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash must not verify")
	}
}

func TestBcryptHasher_LongPasswordRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, raw := range []string{strings.Repeat("p", 80), strings.Repeat("é", 40)} {
		hash, err := h.Hash(raw)
		if err != nil {
			t.Fatalf("Hash(%d bytes): %v", len(raw), err)
		}
		if !h.Verify(raw, hash) {
			t.Fatalf("Verify must accept the %d byte password", len(raw))
		}
		// Same 72-byte prefix, different tail.
		if h.Verify(raw[:72]+"xxxxxxxx", hash) {
			t.Fatalf("Verify must look past the first 72 bytes")
		}
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
