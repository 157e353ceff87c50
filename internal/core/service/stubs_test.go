package service

import (
	"context"
	"sort"
	"strings"

	"github.com/memberchat/member-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID      map[string]*domain.Account
	createErr error
	findErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == domain.ErrAccountNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, a := range r.byID {
		if a.Username == account.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.byID[account.ID] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) UpdateUsername(_ context.Context, id, username string) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for _, other := range r.byID {
		if other.ID != id && other.Username == username {
			return domain.ErrUsernameTaken
		}
	}
	a.Username = username
	return nil
}

type stubTokenRepo struct {
	byKey      map[string]*domain.Token
	createErrs []error // consumed one per Create call
	deleteErr  error
	creates    int
	deletes    int
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byKey: make(map[string]*domain.Token)}
}

func (r *stubTokenRepo) ExistsByKey(_ context.Context, key string) (bool, error) {
	_, ok := r.byKey[key]
	return ok, nil
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	r.creates++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if _, ok := r.byKey[token.Key]; ok {
		return nil, domain.ErrTokenKeyExists
	}
	clone := *token
	r.byKey[token.Key] = &clone
	return token, nil
}

func (r *stubTokenRepo) DeleteAllForAccount(_ context.Context, accountID string) (int64, error) {
	r.deletes++
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for key, t := range r.byKey {
		if t.AccountID == accountID {
			delete(r.byKey, key)
			n++
		}
	}
	return n, nil
}

func (r *stubTokenRepo) FindByKey(_ context.Context, key string) (*domain.Token, error) {
	t, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) keysFor(accountID string) []string {
	var keys []string
	for key, t := range r.byKey {
		if t.AccountID == accountID {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// stubHasher keeps tests fast; bcrypt itself is covered in the security package.
type stubHasher struct{}

func (stubHasher) Hash(raw string) (string, error) {
	return "hashed:" + raw, nil
}

func (stubHasher) Verify(raw, hash string) bool {
	return raw != "" && strings.TrimPrefix(hash, "hashed:") == raw
}

type stubMessageRepo struct {
	msgs      []domain.ChatMessage
	lastLimit int
	err       error
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.msgs = append(r.msgs, *msg)
	return msg, nil
}

func (r *stubMessageRepo) ListRecent(_ context.Context, limit int) ([]domain.ChatMessage, error) {
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.ChatMessage, 0, len(r.msgs))
	for i := len(r.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.msgs[i])
	}
	return out, nil
}
