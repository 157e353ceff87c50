package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

// ProfileUpdate carries the updatable profile fields. With Partial set,
// nil fields are left unchanged; otherwise every field is required.
type ProfileUpdate struct {
	Username *string
	Partial  bool
}

// AccountService orchestrates registration, login and profile access.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, *domain.Token, error)
	Login(ctx context.Context, username, password string) (*domain.Account, *domain.Token, error)
	Logout(ctx context.Context, account *domain.Account) (int64, error)
	GetProfile(ctx context.Context, account *domain.Account) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, account *domain.Account, in ProfileUpdate) (*domain.Profile, error)
}
