package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/logging"
	"github.com/Skotchmaster/health_account/internal/models"
)

func (m *TokenMiddleware) RequireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(models.TokenAccess, next)
}

func (m *TokenMiddleware) RequireRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(models.TokenRefresh, next)
}

func (m *TokenMiddleware) require(typ models.TokenType, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "auth", "token_type", typ)

		token, err := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			l.Warn("auth_failed", "reason", err.Error())
			return err
		}
		p, err := m.Auth.Authenticate(ctx, token, typ)
		if err != nil {
			l.Warn("auth_failed", "error", err)
			return err
		}

		setPrincipal(c, p)
		c.Set("user_id", p.User.ID)
		return next(c)
	}
}
