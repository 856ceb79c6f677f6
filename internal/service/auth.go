package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/hash"
	"github.com/Skotchmaster/health_account/internal/logging"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/tokens"
)

// Principal is an authenticated bearer: the verified claims and the active
// user they resolve to.
type Principal struct {
	User   *models.User
	Claims *tokens.Claims
	Token  string
}

type SignUpInput struct {
	FirstName string
	LastName  string
	Username  string
	Password1 string
	Password2 string
}

type AuthService struct {
	Users     *UserService
	Roles     *RoleService
	Blacklist *BlacklistService
	Sessions  *SessionService
	Codec     *tokens.Codec
	Hasher    hash.Hasher
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.Tokens, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup", "username", in.Username)

	if in.Password1 != in.Password2 {
		l.Warn("signup_failed", "status", 400, "reason", "passwords do not match")
		return nil, apperr.Validation("Passwords do not match")
	}
	acc, err := s.Users.AddUser(ctx, NewUser{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Password:  in.Password1,
	})
	if err != nil {
		l.Warn("signup_failed", "error", err)
		return nil, err
	}

	return s.issue(ctx, l, &acc.User, tokens.NewTokenID(), tokens.NewTokenID())
}

// SignIn answers InvalidLoginError for an unknown username and for a wrong
// password alike.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*models.Tokens, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin", "username", username)

	user, err := s.Users.GetUserByUsername(ctx, username, true)
	if err != nil {
		var nr *apperr.NoResultError
		if errors.As(err, &nr) {
			l.Warn("signin_failed", "status", 400, "reason", "invalid username or password")
			return nil, apperr.ErrInvalidLogin
		}
		l.Error("signin_failed", "status", 500, "error", err)
		return nil, err
	}
	if !s.Hasher.Verify(password, user.Password) {
		l.Warn("signin_failed", "status", 400, "reason", "invalid username or password")
		return nil, apperr.ErrInvalidLogin
	}

	return s.issue(ctx, l, user, tokens.NewTokenID(), tokens.NewTokenID())
}

// SignOut blacklists the refresh token of p until its own expiry. Access
// tokens already issued stay valid until they expire.
func (s *AuthService) SignOut(ctx context.Context, p *Principal) error {
	l := logging.FromContext(ctx).With("svc", "auth.signout", "user_id", p.User.ID)

	var exp time.Time
	if p.Claims.ExpiresAt != nil {
		exp = p.Claims.ExpiresAt.Time
	}
	if err := s.Blacklist.BlacklistToken(ctx, p.Claims.ID, exp); err != nil {
		l.Error("signout_failed", "status", 500, "reason", "cannot blacklist refresh token", "error", err)
		return err
	}
	if err := s.Sessions.TerminateSession(ctx, p.User.ID, p.User.Username); err != nil {
		l.Error("session_event_failed", "action", models.SessionTerminate, "error", err)
	}
	l.Info("signout_successful", "jti", p.Claims.ID)
	return nil
}

// Validate reports the claims of token and whether it is expired,
// blacklisted or active. A token that fails verification is expired,
// whatever the blacklist says.
func (s *AuthService) Validate(ctx context.Context, token string) (*models.TokenPayload, error) {
	claims, err := s.Codec.Parse(token, false)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	payload := &models.TokenPayload{
		Sub:    claims.Subject,
		UserID: claims.UserID,
		JTI:    claims.ID,
		Type:   claims.Type,
	}
	if claims.IssuedAt != nil {
		payload.IAT = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		payload.EXP = claims.ExpiresAt.Time.UTC()
	}

	if !s.Codec.Verify(token) {
		payload.Status = models.StatusExpired
		return payload, nil
	}
	blacklisted, err := s.Blacklist.CheckBlacklistToken(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		payload.Status = models.StatusBlacklisted
	} else {
		payload.Status = models.StatusActive
	}
	return payload, nil
}

// Access mints a new access token under the refresh token's id.
func (s *AuthService) Access(ctx context.Context, p *Principal) (*models.Tokens, error) {
	l := logging.FromContext(ctx).With("svc", "auth.access", "user_id", p.User.ID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.Codec.Now()
	access, err := s.Codec.CreateAccessToken(p.User.ID, p.User.Username, tokens.WithTokenID(p.Claims.ID), tokens.WithNow(now))
	if err != nil {
		l.Error("access_failed", "status", 500, "error", err)
		return nil, err
	}
	s.publishCreate(ctx, l, p.User, access, now.Add(s.Codec.AccessTTL()))
	return &models.Tokens{AccessToken: access, TokenType: models.BearerTokenType}, nil
}

// Refresh rotates both tokens under one fresh id. The presented refresh
// token is not revoked.
func (s *AuthService) Refresh(ctx context.Context, p *Principal) (*models.Tokens, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh", "user_id", p.User.ID)
	id := tokens.NewTokenID()
	return s.issue(ctx, l, p.User, id, id)
}

// Authenticate verifies token, rejects a blacklisted id, checks the token
// type and resolves the active user, in that order.
func (s *AuthService) Authenticate(ctx context.Context, token string, expected models.TokenType) (*Principal, error) {
	claims, err := s.Codec.Parse(token, true)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, apperr.ErrInvalidToken
	}

	blacklisted, err := s.Blacklist.CheckBlacklistToken(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, apperr.ErrInvalidToken
	}

	if claims.Type != expected {
		return nil, apperr.InvalidTokenType(string(expected), string(claims.Type))
	}

	if claims.UserID == 0 {
		return nil, apperr.ErrUnauthorized
	}
	user, err := s.Users.GetUser(ctx, claims.UserID, true)
	if err != nil {
		var nr *apperr.NoResultError
		if errors.As(err, &nr) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	return &Principal{User: user, Claims: claims, Token: token}, nil
}

func (s *AuthService) RequireAdmin(ctx context.Context, p *Principal) error {
	ok, err := s.Roles.HasRole(ctx, p.User.ID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if !ok {
		logging.FromContext(ctx).Warn("admin_required", "status", 403, "user_id", p.User.ID)
		return apperr.ErrForbidden
	}
	return nil
}

// issue mints an access/refresh pair and announces the new session. The pair
// is built without any I/O in between so a cancelled request never leaves
// half a pair behind.
func (s *AuthService) issue(ctx context.Context, l *slog.Logger, user *models.User, accessID, refreshID string) (*models.Tokens, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.Codec.Now()
	access, err := s.Codec.CreateAccessToken(user.ID, user.Username, tokens.WithTokenID(accessID), tokens.WithNow(now))
	if err != nil {
		l.Error("token_issue_failed", "status", 500, "error", err)
		return nil, err
	}
	refresh, err := s.Codec.CreateRefreshToken(user.ID, user.Username, tokens.WithTokenID(refreshID), tokens.WithNow(now))
	if err != nil {
		l.Error("token_issue_failed", "status", 500, "error", err)
		return nil, err
	}

	s.publishCreate(ctx, l, user, access, now.Add(s.Codec.AccessTTL()))
	l.Info("tokens_issued", "user_id", user.ID)
	return &models.Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    models.BearerTokenType,
	}, nil
}

func (s *AuthService) publishCreate(ctx context.Context, l *slog.Logger, user *models.User, access string, expiresAt time.Time) {
	if err := s.Sessions.NewSession(ctx, access, expiresAt, user.ID, user.Username); err != nil {
		l.Error("session_event_failed", "action", models.SessionCreate, "error", err)
	}
}
