package models

import (
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin, RoleManager:
		return true
	}
	return false
}

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type TokenStatus string

const (
	StatusActive      TokenStatus = "active"
	StatusExpired     TokenStatus = "expired"
	StatusBlacklisted TokenStatus = "blacklisted"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"        json:"id"`
	FirstName string    `gorm:"not null"                        json:"first_name"`
	LastName  string    `gorm:"not null"                        json:"last_name"`
	Username  string    `gorm:"uniqueIndex;size:50;not null"    json:"username"`
	Password  string    `gorm:"not null"                        json:"-"`
	IsActive  bool      `gorm:"not null;default:true"           json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Roles []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserRole is one (user, role) assignment. Rows are deactivated, never
// deleted, so the table keeps the history of a user's roles.
type UserRole struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"                      json:"id"`
	UserID   int64 `gorm:"not null;uniqueIndex:user_id_role,priority:1"  json:"user_id"`
	Role     Role  `gorm:"type:varchar(16);not null;uniqueIndex:user_id_role,priority:2" json:"role"`
	IsActive bool  `gorm:"not null;default:true"                         json:"is_active"`
}

func (UserRole) TableName() string { return "user_role" }

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// TokenPayload is the introspection view of a token.
type TokenPayload struct {
	Sub    string      `json:"sub"`
	UserID int64       `json:"user_id"`
	JTI    string      `json:"jti"`
	IAT    time.Time   `json:"iat"`
	EXP    time.Time   `json:"exp"`
	Type   TokenType   `json:"type"`
	Status TokenStatus `json:"status"`
}
