package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

//go:generate mockgen -source=account_repository.go -destination=mocks/mock_account_repository.go -package=mocks

// AccountRepository persists member accounts and their password hashes.
type AccountRepository interface {
	// FindByUsername returns domain.ErrAccountNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// FindByID returns domain.ErrAccountNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create returns domain.ErrUsernameTaken on a unique violation.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// UpdateUsername returns domain.ErrUsernameTaken on a unique violation and
	// domain.ErrAccountNotFound when the row is gone.
	UpdateUsername(ctx context.Context, id, username string) error
}
