package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	BlacklistPrefix = "blacklist_token"

	blacklistedValue = "blacklisted"
	// clearedValue marks an id that was blacklisted and later released.
	clearedValue = "revoked"

	scanBatch = 100
)

// KeyValue is the slice of the redis command set the blacklist needs. Both a
// pooled *redis.Client and a pinned *redis.Conn satisfy it.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetArgs(ctx context.Context, key string, value any, a redis.SetArgs) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

type RedisBlacklistRepository struct {
	RDB    KeyValue
	Prefix string
	Now    func() time.Time
}

func NewBlacklistRepository(rdb KeyValue, now func() time.Time) *RedisBlacklistRepository {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &RedisBlacklistRepository{RDB: rdb, Prefix: BlacklistPrefix, Now: now}
}

func (r *RedisBlacklistRepository) key(tokenID string) string {
	return r.Prefix + ":" + tokenID
}

func (r *RedisBlacklistRepository) AddToken(ctx context.Context, tokenID string, expiresIn time.Duration, expiresAt time.Time) error {
	var ttl time.Duration
	switch {
	case expiresIn != 0:
		ttl = expiresIn
	case !expiresAt.IsZero():
		ttl = expiresAt.Sub(r.Now())
	}
	if (expiresIn != 0 || !expiresAt.IsZero()) && ttl <= 0 {
		// already past its natural expiry
		return nil
	}

	if err := r.RDB.Set(ctx, r.key(tokenID), blacklistedValue, ttl).Err(); err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

func (r *RedisBlacklistRepository) ExistsToken(ctx context.Context, tokenID string) (bool, error) {
	val, err := r.RDB.Get(ctx, r.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return val == blacklistedValue, nil
}

// RemoveToken overwrites the marker and keeps the remaining TTL. A missing
// key is left missing.
func (r *RedisBlacklistRepository) RemoveToken(ctx context.Context, tokenID string) error {
	err := r.RDB.SetArgs(ctx, r.key(tokenID), clearedValue, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("blacklist remove: %w", err)
	}
	return nil
}

// GetAllTokens walks the keyspace in scan order and returns the ids that are
// currently blacklisted.
func (r *RedisBlacklistRepository) GetAllTokens(ctx context.Context, p Page) ([]string, error) {
	match := r.Prefix + ":*"
	prefix := r.Prefix + ":"
	ids := make([]string, 0)
	skipped := 0
	var cursor uint64
	for {
		keys, next, err := r.RDB.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("blacklist scan: %w", err)
		}
		for _, k := range keys {
			val, err := r.RDB.Get(ctx, k).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("blacklist scan: %w", err)
			}
			if val != blacklistedValue {
				continue
			}
			if skipped < p.Offset {
				skipped++
				continue
			}
			ids = append(ids, strings.TrimPrefix(k, prefix))
			if p.Limit > 0 && len(ids) >= p.Limit {
				return ids, nil
			}
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}
