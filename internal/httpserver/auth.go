package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/logging"
	"github.com/Skotchmaster/health_account/internal/service"
	"github.com/Skotchmaster/health_account/internal/transport"
)

type AuthHTTP struct {
	Svc       *service.AuthService
	Blacklist *service.BlacklistService
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.SignUpRequest
	if err := bind(c, &req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return err
	}

	res, err := h.Svc.SignUp(ctx, service.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		return err
	}
	l.Info("signup_successful", "username", req.Username)
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signin")

	var req transport.SignInRequest
	if err := bind(c, &req); err != nil {
		l.Warn("signin_error", "status", 400, "error", err)
		return err
	}

	res, err := h.Svc.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	l.Info("signin_successful", "username", req.Username)
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.Svc.SignOut(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.StatusResponse{Status: "ok"})
}

func (h *AuthHTTP) Validate(c echo.Context) error {
	token := c.QueryParam("access_token")
	if token == "" {
		token = c.QueryParam("accessToken")
	}
	if token == "" {
		return apperr.Validation("access_token is required")
	}

	res, err := h.Svc.Validate(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) Access(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	res, err := h.Svc.Access(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.AccessResponse{AccessToken: res.AccessToken, TokenType: res.TokenType})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	res, err := h.Svc.Refresh(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) ListBlacklist(c echo.Context) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	ids, err := h.Blacklist.GetAllBlockedTokens(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.BlacklistResponse{Tokens: ids})
}

func (h *AuthHTTP) Unblacklist(c echo.Context) error {
	jti := c.Param("jti")
	if jti == "" {
		return apperr.Validation("jti is required")
	}
	if err := h.Blacklist.RevokeToken(c.Request().Context(), jti); err != nil {
		return err
	}
	logging.FromContext(c.Request().Context()).Info("token_unblacklisted", "handler", "auth_blacklist", "jti", jti)
	return c.JSON(http.StatusOK, transport.StatusResponse{Status: "ok"})
}
