// Package authclient lets other services validate and rotate tokens against
// the account service over HTTP.
package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/health_account/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(accountServiceURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(accountServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// StatusError is a non-200 answer from the account service.
type StatusError struct {
	Code   int
	Detail []string
}

func (e *StatusError) Error() string {
	if len(e.Detail) == 0 {
		return fmt.Sprintf("account service returned status %d", e.Code)
	}
	return fmt.Sprintf("account service returned status %d: %s", e.Code, strings.Join(e.Detail, "; "))
}

// Validate reports the status of an access token. A blacklisted or expired
// token is not an error; callers inspect the payload's Status.
func (c *Client) Validate(ctx context.Context, accessToken string) (*models.TokenPayload, error) {
	q := url.Values{"access_token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/authentication/validate?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var out models.TokenPayload
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.Tokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/authentication/refresh", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", models.BearerTokenType+" "+refreshToken)

	var out models.Tokens
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Code: resp.StatusCode}
		var body struct {
			Detail []string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			se.Detail = body.Detail
		}
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
