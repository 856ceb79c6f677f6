package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/service"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string, expected models.TokenType) (*service.Principal, error)
	RequireAdmin(ctx context.Context, p *service.Principal) error
}

type TokenMiddleware struct {
	Auth Authenticator
}

func New(a Authenticator) *TokenMiddleware {
	return &TokenMiddleware{Auth: a}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperr.ErrInvalidAuthCode
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", apperr.ErrInvalidAuthScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.ErrInvalidAuthCode
	}
	return token, nil
}

// Principal returns the bearer resolved by RequireAccess or RequireRefresh.
func Principal(c echo.Context) (*service.Principal, bool) {
	p, ok := c.Get(principalKey).(*service.Principal)
	return p, ok && p != nil
}

func setPrincipal(c echo.Context, p *service.Principal) {
	c.Set(principalKey, p)
}
