// Package tokens encodes and decodes the signed access and refresh tokens
// issued by the account service.
//
// A token carries sub (username), user_id, type, jti, iat and exp. The codec
// is stateless: whether a token id has been revoked is answered by the
// blacklist store, not here.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
)

type Claims struct {
	UserID int64            `json:"user_id"`
	Type   models.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// EncodingError is a signing or serialization fault. It indicates a bug or a
// broken deployment, never bad user input.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return "token encoding: " + e.Err.Error() }

func (e *EncodingError) Unwrap() error { return e.Err }

type Options struct {
	Secret     []byte
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewCodec(opts Options) (*Codec, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("tokens: empty signing secret")
	}
	if opts.Algorithm == "" {
		opts.Algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(opts.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("tokens: unsupported signing algorithm %q", opts.Algorithm)
	}
	if opts.AccessTTL <= 0 || opts.RefreshTTL <= 0 {
		return nil, errors.New("tokens: token lifetimes must be positive")
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Codec{
		secret:     opts.Secret,
		method:     method,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
	}, nil
}

func NewTokenID() string { return uuid.NewString() }

func (c *Codec) Now() time.Time { return c.now() }

func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Encode signs payload after attaching iat=now, exp=now+expiresIn and
// jti=tokenID. Zero arguments fall back to the codec clock, the access
// lifetime and a fresh random id. payload itself is not modified.
func (c *Codec) Encode(payload jwt.MapClaims, now time.Time, expiresIn time.Duration, tokenID string) (string, error) {
	if now.IsZero() {
		now = c.now()
	}
	if expiresIn == 0 {
		expiresIn = c.accessTTL
	}
	if tokenID == "" {
		tokenID = NewTokenID()
	}

	claims := make(jwt.MapClaims, len(payload)+3)
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(expiresIn))
	claims["jti"] = tokenID

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", &EncodingError{Err: err}
	}
	return signed, nil
}

// Decode returns the raw claim set. With verify=false the payload segment is
// read without checking signature or expiry; the result must not be used to
// authenticate the bearer.
func (c *Codec) Decode(token string, verify bool) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if err := c.parse(token, claims, verify); err != nil {
		return nil, err
	}
	return claims, nil
}

// Parse is Decode into the typed claim set.
func (c *Codec) Parse(token string, verify bool) (*Claims, error) {
	claims := &Claims{}
	if err := c.parse(token, claims, verify); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Codec) Verify(token string) bool {
	_, err := c.Parse(token, true)
	return err == nil
}

func (c *Codec) parse(token string, claims jwt.Claims, verify bool) error {
	if !verify {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return fmt.Errorf("%w: %w", apperr.ErrInvalidToken, err)
		}
		return nil
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	tkn, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return apperr.ErrInvalidToken
	}
	return nil
}
