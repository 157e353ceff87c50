package ports

import (
	"context"

	"github.com/memberchat/member-service/internal/core/domain"
)

// TokenIssuer mints and revokes session tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, account *domain.Account, invalidateOld bool) (*domain.Token, error)
	Invalidate(ctx context.Context, account *domain.Account) (int64, error)
}

// TokenAuthenticator resolves the raw Authorization header to an account.
// A nil account with a nil error means no credentials were supplied.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.Account, error)
}
