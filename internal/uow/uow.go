// Package uow scopes repository access to one backend per unit of work.
//
// Each unit is used as uow.Do(ctx, fn): the backend resource is acquired
// before fn runs and released on every exit path, including a panic inside
// fn. Units are cheap and built per call, never shared between requests.
package uow

import (
	"context"

	"github.com/Skotchmaster/health_account/internal/repo"
)

// DBUnit exposes the relational repositories bound to one transaction.
type DBUnit struct {
	Users repo.UserRepository
	Roles repo.RoleRepository
}

// CacheUnit exposes the blacklist bound to one pooled connection.
type CacheUnit struct {
	Blacklist repo.BlacklistRepository
}

// BrokerUnit exposes the session-events channel.
type BrokerUnit struct {
	Sessions repo.SessionRepository
}

type Database interface {
	Do(ctx context.Context, fn func(ctx context.Context, u *DBUnit) error) error
}

type Cache interface {
	Do(ctx context.Context, fn func(ctx context.Context, u *CacheUnit) error) error
}

type Broker interface {
	Do(ctx context.Context, fn func(ctx context.Context, u *BrokerUnit) error) error
}
