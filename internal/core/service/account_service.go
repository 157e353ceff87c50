package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

// AccountService implements registration, login and profile management.
type AccountService struct {
	accounts ports.AccountRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	now      func() time.Time
	log      zerolog.Logger
}

func NewAccountService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Register creates an account and issues its first token. Nothing is stored
// when validation fails.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.Account, *domain.Token, error) {
	username = domain.NormalizeUsername(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, nil, err
	}

	taken, err := s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("register: generate id: %w", err)
	}

	created, err := s.accounts.Create(ctx, &domain.Account{
		ID:           id.String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(ctx, created, true)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("account registered")
	return created, token, nil
}

// Login checks the credentials and issues a fresh token, revoking older ones.
// Unknown usernames and wrong passwords fail identically.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, *domain.Token, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.log.Info().Str("username", username).Msg("login rejected")
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, account, true)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return account, token, nil
}

// Logout revokes every token of the account.
func (s *AccountService) Logout(ctx context.Context, account *domain.Account) (int64, error) {
	return s.tokens.Invalidate(ctx, account)
}

func (s *AccountService) GetProfile(_ context.Context, account *domain.Account) (*domain.Profile, error) {
	if account == nil {
		return nil, domain.ErrNilAccount
	}
	return account.Profile(), nil
}

// UpdateProfile applies a full or partial profile update. The username must
// stay unique; keeping the current one is allowed.
func (s *AccountService) UpdateProfile(ctx context.Context, account *domain.Account, in ports.ProfileUpdate) (*domain.Profile, error) {
	if account == nil {
		return nil, domain.ErrNilAccount
	}

	if in.Username == nil {
		if !in.Partial {
			return nil, domain.NewValidationError("username", "username is required")
		}
		return account.Profile(), nil
	}

	username := domain.NormalizeUsername(*in.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}

	updated := *account
	if username == account.Username {
		return updated.Profile(), nil
	}

	existing, err := s.accounts.FindByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != account.ID:
		return nil, domain.ErrUsernameTaken
	case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := s.accounts.UpdateUsername(ctx, account.ID, username); err != nil {
		return nil, err
	}

	updated.Username = username
	s.log.Info().Str("account_id", account.ID).Str("username", username).Msg("profile updated")
	return updated.Profile(), nil
}
