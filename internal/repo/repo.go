// Package repo holds one capability interface per repository kind and its
// backend implementation: gorm for users and roles, redis for the token
// blacklist, kafka for session events.
//
// Implementations translate backend faults into apperr kinds where the kind
// is meaningful to a caller (lookup miss, unique violation). Everything else
// is wrapped and returned as is.
package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/health_account/internal/models"
)

// Page bounds a listing. Zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

type UserFilter struct {
	IDs        []int64
	OnlyActive bool
	// FullName is matched case-insensitively against "first last".
	FullName string
}

type UserRepository interface {
	AddUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64, onlyActive bool) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string, onlyActive bool) (*models.User, error)
	ListUsers(ctx context.Context, f UserFilter, p Page) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, fields map[string]any) (*models.User, error)
	DeactivateUser(ctx context.Context, id int64) (*models.User, error)
	// LockUser holds the user row until the surrounding transaction ends.
	LockUser(ctx context.Context, id int64) error
}

type RoleRepository interface {
	AddRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error)
	AddOrActivateRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error)
	RemoveRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error)
	RemoveAllRoles(ctx context.Context, userID int64) error
	GetRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error)
	GetRoles(ctx context.Context, userID int64, onlyActive bool) ([]models.UserRole, error)
	GetAllRoles(ctx context.Context, roles []models.Role, onlyActive bool, p Page) ([]models.UserRole, error)
}

type BlacklistRepository interface {
	// AddToken revokes tokenID. expiresIn wins over expiresAt; with both zero
	// the entry never expires.
	AddToken(ctx context.Context, tokenID string, expiresIn time.Duration, expiresAt time.Time) error
	ExistsToken(ctx context.Context, tokenID string) (bool, error)
	RemoveToken(ctx context.Context, tokenID string) error
	GetAllTokens(ctx context.Context, p Page) ([]string, error)
}

type SessionRepository interface {
	Send(ctx context.Context, s models.Session) error
}

// EventPublisher is the producer side of the broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}
