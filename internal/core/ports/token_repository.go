package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

//go:generate mockgen -source=token_repository.go -destination=mocks/mock_token_repository.go -package=mocks

// TokenRepository persists session tokens keyed by their key.
type TokenRepository interface {
	ExistsByKey(ctx context.Context, key string) (bool, error)
	// Create returns domain.ErrTokenKeyExists when the key is already stored.
	Create(ctx context.Context, token *domain.Token) (*domain.Token, error)
	DeleteAllForAccount(ctx context.Context, accountID string) (int64, error)
	// FindByKey returns domain.ErrTokenNotFound when no token matches.
	FindByKey(ctx context.Context, key string) (*domain.Token, error)
}

// TokenRotator is implemented by token stores that can replace all tokens of
// an account with a new one atomically.
type TokenRotator interface {
	// Rotate deletes every token owned by token.AccountID and stores token in
	// a single transaction. It returns the number of deleted tokens.
	Rotate(ctx context.Context, token *domain.Token) (int64, error)
}
