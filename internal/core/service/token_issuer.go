package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// maxKeyAttempts bounds key regeneration on collisions. With 320 random bits
// a single retry is already astronomically unlikely.
const maxKeyAttempts = 8

var errKeyAttemptsExhausted = errors.New("issue token: could not generate a unique key")

// TokenIssuer mints, stores and revokes session tokens.
type TokenIssuer struct {
	tokens ports.TokenRepository
	newKey func() (string, error)
	now    func() time.Time
	log    zerolog.Logger
}

func NewTokenIssuer(tokens ports.TokenRepository, log zerolog.Logger) *TokenIssuer {
	return &TokenIssuer{
		tokens: tokens,
		newKey: domain.NewTokenKey,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

// Issue creates a new token for account. With invalidateOld every existing
// token of the account is removed first, so only the returned key stays valid.
//
// Stores implementing ports.TokenRotator do the removal and the insert in one
// transaction. Other stores run two steps: a failure after the delete leaves
// the account without tokens until the next login.
func (s *TokenIssuer) Issue(ctx context.Context, account *domain.Account, invalidateOld bool) (*domain.Token, error) {
	if account == nil || account.ID == "" {
		return nil, domain.ErrNilAccount
	}

	rotator, atomic := s.tokens.(ports.TokenRotator)
	if invalidateOld && !atomic {
		n, err := s.tokens.DeleteAllForAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("issue token: invalidate old tokens: %w", err)
		}
		s.log.Debug().Str("account_id", account.ID).Int64("revoked", n).Msg("old tokens invalidated")
	}

	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		key, err := s.newKey()
		if err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}

		exists, err := s.tokens.ExistsByKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("issue token: check key: %w", err)
		}
		if exists {
			s.log.Warn().Int("attempt", attempt).Msg("token key collision, regenerating")
			continue
		}

		token := &domain.Token{Key: key, AccountID: account.ID, CreatedAt: s.now()}

		var created *domain.Token
		if invalidateOld && atomic {
			var revoked int64
			revoked, err = rotator.Rotate(ctx, token)
			if err == nil {
				created = token
				s.log.Debug().Str("account_id", account.ID).Int64("revoked", revoked).Msg("tokens rotated")
			}
		} else {
			created, err = s.tokens.Create(ctx, token)
		}

		if errors.Is(err, domain.ErrTokenKeyExists) {
			s.log.Warn().Int("attempt", attempt).Msg("token key taken on insert, regenerating")
			continue
		}
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrNilAccount
		}
		if err != nil {
			if invalidateOld && !atomic {
				s.log.Warn().Err(err).Str("account_id", account.ID).Msg("old tokens removed but new token was not stored")
			}
			return nil, fmt.Errorf("issue token: store: %w", err)
		}

		s.log.Info().Str("account_id", account.ID).Msg("token issued")
		return created, nil
	}

	return nil, errKeyAttemptsExhausted
}

// Invalidate deletes every token owned by account and reports how many were
// removed. A nil account is a no-op.
func (s *TokenIssuer) Invalidate(ctx context.Context, account *domain.Account) (int64, error) {
	if account == nil {
		return 0, nil
	}

	n, err := s.tokens.DeleteAllForAccount(ctx, account.ID)
	if err != nil {
		return 0, fmt.Errorf("invalidate tokens: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Int64("revoked", n).Msg("tokens invalidated")
	return n, nil
}
