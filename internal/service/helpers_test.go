package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/health_account/internal/hash"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/tokens"
	"github.com/Skotchmaster/health_account/internal/uow"
)

const strongPassword = "Secret#123"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.Session
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, _, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if s, ok := event.(models.Session); ok {
		p.events = append(p.events, s)
	}
	return nil
}

func (p *fakePublisher) Events() []models.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Session(nil), p.events...)
}

type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	clock *testClock
	pub   *fakePublisher
	codec *tokens.Codec

	users     *UserService
	roles     *RoleService
	blacklist *BlacklistService
	sessions  *SessionService
	auth      *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserRole{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := tokens.NewCodec(tokens.Options{
		Secret:     []byte("test-secret"),
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 180 * 24 * time.Hour,
		Now:        clock.Now,
	})
	require.NoError(t, err)

	pub := &fakePublisher{}
	hasher := &hash.Bcrypt{Cost: bcrypt.MinCost}

	env := &testEnv{db: db, mr: mr, clock: clock, pub: pub, codec: codec}
	env.users = NewUserService(uow.NewGormUOW(db), hasher)
	env.roles = NewRoleService(uow.NewGormUOW(db))
	env.blacklist = NewBlacklistService(uow.NewRedisUOW(rdb, clock.Now))
	env.sessions = NewSessionService(uow.NewKafkaUOW(pub, "sessions"))
	env.auth = &AuthService{
		Users:     env.users,
		Roles:     env.roles,
		Blacklist: env.blacklist,
		Sessions:  env.sessions,
		Codec:     codec,
		Hasher:    hasher,
	}
	return env
}

func (e *testEnv) signUp(t *testing.T, username string) *models.Tokens {
	t.Helper()
	tk, err := e.auth.SignUp(context.Background(), SignUpInput{
		FirstName: "John",
		LastName:  "Doe",
		Username:  username,
		Password1: strongPassword,
		Password2: strongPassword,
	})
	require.NoError(t, err)
	return tk
}

func (e *testEnv) principal(t *testing.T, token string, typ models.TokenType) *Principal {
	t.Helper()
	p, err := e.auth.Authenticate(context.Background(), token, typ)
	require.NoError(t, err)
	return p
}

var errBroker = errors.New("broker down")
