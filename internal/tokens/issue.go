package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/health_account/internal/models"
)

type issueOptions struct {
	tokenID   string
	expiresIn time.Duration
	now       time.Time
}

type IssueOption func(*issueOptions)

func WithTokenID(id string) IssueOption { return func(o *issueOptions) { o.tokenID = id } }

func WithExpiresIn(d time.Duration) IssueOption { return func(o *issueOptions) { o.expiresIn = d } }

func WithNow(now time.Time) IssueOption { return func(o *issueOptions) { o.now = now } }

func (c *Codec) CreateAccessToken(userID int64, username string, opts ...IssueOption) (string, error) {
	return c.create(models.TokenAccess, c.accessTTL, userID, username, opts)
}

func (c *Codec) CreateRefreshToken(userID int64, username string, opts ...IssueOption) (string, error) {
	return c.create(models.TokenRefresh, c.refreshTTL, userID, username, opts)
}

func (c *Codec) create(typ models.TokenType, ttl time.Duration, userID int64, username string, opts []IssueOption) (string, error) {
	o := issueOptions{expiresIn: ttl}
	for _, opt := range opts {
		opt(&o)
	}
	payload := jwt.MapClaims{
		"sub":     username,
		"user_id": userID,
		"type":    string(typ),
	}
	return c.Encode(payload, o.now, o.expiresIn, o.tokenID)
}
