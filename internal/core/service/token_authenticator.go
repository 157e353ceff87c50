package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// TokenAuthenticator resolves "Authorization: Token <key>" headers.
type TokenAuthenticator struct {
	tokens   ports.TokenRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewTokenAuthenticator(tokens ports.TokenRepository, accounts ports.AccountRepository, log zerolog.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, accounts: accounts, log: log}
}

// Authenticate returns the account owning the presented key.
//
// An empty header yields (nil, nil): no credentials were supplied and the
// caller decides whether anonymous access is fine. A malformed header yields
// domain.ErrInvalidTokenHeader, an unknown key domain.ErrInvalidToken.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, header string) (*domain.Account, error) {
	if header == "" {
		return nil, nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != domain.TokenScheme || parts[1] == "" {
		return nil, domain.ErrInvalidTokenHeader
	}
	// Stores reject keys that are not valid UTF-8 with a driver error.
	if !utf8.ValidString(parts[1]) {
		return nil, domain.ErrInvalidToken
	}

	token, err := a.tokens.FindByKey(ctx, parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("authenticate: find token: %w", err)
	}

	account, err := a.accounts.FindByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			a.log.Warn().Str("account_id", token.AccountID).Msg("token references a missing account")
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("authenticate: find account: %w", err)
	}

	return account, nil
}
