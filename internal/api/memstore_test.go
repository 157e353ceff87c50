package api

import (
	"context"
	"sync"

	"github.com/memberchat/member-service/internal/core/domain"
)

// memStore is an in-memory implementation of the account, token and message
// repositories used to drive the router end to end.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	tokens   map[string]domain.Token
	messages []domain.ChatMessage
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]domain.Account),
		tokens:   make(map[string]domain.Token),
	}
}

type memAccounts struct{ *memStore }
type memTokens struct{ *memStore }
type memMessages struct{ *memStore }

func (s memAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (s memAccounts) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s memAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == account.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	s.accounts[account.ID] = *account
	out := *account
	return &out, nil
}

func (s memAccounts) UpdateUsername(_ context.Context, id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for otherID, other := range s.accounts {
		if otherID != id && other.Username == username {
			return domain.ErrUsernameTaken
		}
	}
	a.Username = username
	s.accounts[id] = a
	return nil
}

func (s memTokens) ExistsByKey(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[key]
	return ok, nil
}

func (s memTokens) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token.Key]; ok {
		return nil, domain.ErrTokenKeyExists
	}
	s.tokens[token.Key] = *token
	return token, nil
}

func (s memTokens) DeleteAllForAccount(_ context.Context, accountID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, t := range s.tokens {
		if t.AccountID == accountID {
			delete(s.tokens, k)
			n++
		}
	}
	return n, nil
}

func (s memTokens) FindByKey(_ context.Context, key string) (*domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return &t, nil
}

func (s memMessages) Create(_ context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return msg, nil
}

func (s memMessages) ListRecent(_ context.Context, limit int) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		out = append(out, s.messages[i])
	}
	for i := range out {
		if a, ok := s.accounts[out[i].AuthorID]; ok {
			out[i].AuthorUsername = a.Username
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
