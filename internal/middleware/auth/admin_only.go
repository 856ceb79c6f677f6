package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/apperr"
)

// AdminOnly must run after RequireAccess.
func (m *TokenMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := Principal(c)
		if !ok {
			return apperr.ErrUnauthorized
		}
		if err := m.Auth.RequireAdmin(c.Request().Context(), p); err != nil {
			return err
		}
		return next(c)
	}
}
