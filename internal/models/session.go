package models

import "time"

type SessionAction string

const (
	SessionCreate    SessionAction = "create"
	SessionTerminate SessionAction = "terminate"
)

const BearerTokenType = "Bearer"

// Session is the fact published on the session-events topic.
type Session struct {
	Action      SessionAction `json:"action"`
	AccessToken string        `json:"access_token,omitempty"`
	TokenType   string        `json:"token_type,omitempty"`
	ExpiresIn   *time.Time    `json:"expires_in,omitempty"`
	UserID      int64         `json:"user_id,omitempty"`
	Username    string        `json:"username,omitempty"`
}
