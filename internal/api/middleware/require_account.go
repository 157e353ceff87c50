package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/memberchat/member-service/internal/core/domain"
)

// RequireAccount rejects anonymous requests. It must run after TokenAuth.
func RequireAccount() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Account(c) == nil {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
