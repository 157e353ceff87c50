package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/memberchat/member-service/internal/api/metrics"
	"github.com/memberchat/member-service/internal/core/domain"
	"github.com/memberchat/member-service/internal/core/ports"
)

const accountKey = "account"

// TokenAuth resolves the Authorization header to an account and stores it in
// the echo context. Requests without the header pass through anonymously; a
// malformed header or unknown key is rejected.
func TokenAuth(authenticator ports.TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			account, err := authenticator.Authenticate(c.Request().Context(), header)
			if err != nil {
				metrics.TokenAuthenticationsTotal.WithLabelValues(authResult(err)).Inc()
				return err
			}
			if account == nil {
				metrics.TokenAuthenticationsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			metrics.TokenAuthenticationsTotal.WithLabelValues("ok").Inc()
			c.Set(accountKey, account)
			return next(c)
		}
	}
}

// Account returns the account stored by TokenAuth, or nil.
func Account(c echo.Context) *domain.Account {
	account, _ := c.Get(accountKey).(*domain.Account)
	return account
}

func authResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTokenHeader):
		return "invalid_header"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}
