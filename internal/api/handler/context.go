package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/memberchat/member-service/internal/api/middleware"
	"github.com/memberchat/member-service/internal/core/domain"
)

// ctxAccount returns the caller resolved by the TokenAuth middleware and
// fails fast when the route was reached anonymously.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account := middleware.Account(c)
	if account == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return account, nil
}
