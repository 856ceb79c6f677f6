package uow

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/health_account/internal/repo"
)

type RedisUOW struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisUOW(rdb *redis.Client, now func() time.Time) *RedisUOW {
	return &RedisUOW{rdb: rdb, now: now}
}

// Do pins one pooled connection for fn and returns it to the pool afterwards.
// Every command is atomic on its own, so there is nothing to commit.
func (w *RedisUOW) Do(ctx context.Context, fn func(ctx context.Context, u *CacheUnit) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn := w.rdb.Conn()
	defer conn.Close()

	return fn(ctx, &CacheUnit{Blacklist: repo.NewBlacklistRepository(conn, w.now)})
}
