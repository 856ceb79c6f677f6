package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/health_account/internal/repo"
	"github.com/Skotchmaster/health_account/internal/uow"
)

// BlacklistService revokes token ids. A store fault is always returned to
// the caller; a lookup never reports "not blacklisted" on error.
type BlacklistService struct {
	Cache uow.Cache
}

func NewBlacklistService(c uow.Cache) *BlacklistService {
	return &BlacklistService{Cache: c}
}

// BlacklistToken revokes jti until expiresAt, the token's own expiry.
func (s *BlacklistService) BlacklistToken(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.Cache.Do(ctx, func(ctx context.Context, u *uow.CacheUnit) error {
		return u.Blacklist.AddToken(ctx, jti, 0, expiresAt)
	})
}

func (s *BlacklistService) CheckBlacklistToken(ctx context.Context, jti string) (bool, error) {
	var ok bool
	err := s.Cache.Do(ctx, func(ctx context.Context, u *uow.CacheUnit) error {
		var err error
		ok, err = u.Blacklist.ExistsToken(ctx, jti)
		return err
	})
	return ok, err
}

func (s *BlacklistService) GetAllBlockedTokens(ctx context.Context, p repo.Page) ([]string, error) {
	var ids []string
	err := s.Cache.Do(ctx, func(ctx context.Context, u *uow.CacheUnit) error {
		var err error
		ids, err = u.Blacklist.GetAllTokens(ctx, p)
		return err
	})
	return ids, err
}

// RevokeToken lifts a blacklist entry without extending its lifetime.
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string) error {
	return s.Cache.Do(ctx, func(ctx context.Context, u *uow.CacheUnit) error {
		return u.Blacklist.RemoveToken(ctx, jti)
	})
}
