package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/db"
	"github.com/Skotchmaster/health_account/internal/hash"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/uow"
)

func newPostgresServices(t *testing.T) (*UserService, *RoleService) {
	t.Helper()

	dsn := os.Getenv("ACCOUNT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ACCOUNT_TEST_DATABASE_URL is required for tests")
	}

	ctx := context.Background()
	gdb, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() {
		truncateTables(gdb)
		_ = db.Close(gdb)
	})

	u := uow.NewGormUOW(gdb)
	return NewUserService(u, &hash.Bcrypt{Cost: bcrypt.MinCost}), NewRoleService(u)
}

func truncateTables(gdb *gorm.DB) {
	gdb.Exec("TRUNCATE TABLE user_role, users RESTART IDENTITY CASCADE")
}

func uniqueUsername() string {
	return "u_" + uuid.NewString()[:8]
}

func TestPostgres_AddUser_Conflict(t *testing.T) {
	users, _ := newPostgresServices(t)
	ctx := context.Background()
	username := uniqueUsername()

	nu := NewUser{FirstName: "John", LastName: "Doe", Username: username, Password: strongPassword}
	_, err := users.AddUser(ctx, nu)
	require.NoError(t, err)

	_, err = users.AddUser(ctx, nu)
	var exists *apperr.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "User", exists.Entity)
}

func TestPostgres_UpdateRoles_Concurrent(t *testing.T) {
	users, roles := newPostgresServices(t)
	ctx := context.Background()

	acc, err := users.AddUser(ctx, NewUser{FirstName: "John", LastName: "Doe", Username: uniqueUsername(), Password: strongPassword})
	require.NoError(t, err)

	sets := [][]models.Role{
		{models.RoleDoctor},
		{models.RoleAdmin, models.RoleManager},
		{models.RoleUser},
		{models.RoleDoctor, models.RoleAdmin},
	}
	var wg sync.WaitGroup
	for _, set := range sets {
		wg.Add(1)
		go func(set []models.Role) {
			defer wg.Done()
			_, err := roles.UpdateRoles(ctx, acc.User.ID, set)
			assert.NoError(t, err)
		}(set)
	}
	wg.Wait()

	active, err := roles.GetRoles(ctx, acc.User.ID, true)
	require.NoError(t, err)
	got := make([]models.Role, 0, len(active))
	for _, r := range active {
		got = append(got, r.Role)
	}

	matched := false
	for _, set := range sets {
		if sameRoles(set, got) {
			matched = true
		}
	}
	assert.True(t, matched, "active roles %v must equal exactly one submitted set", got)
}

func sameRoles(a, b []models.Role) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[models.Role]int, len(a))
	for _, r := range a {
		seen[r]++
	}
	for _, r := range b {
		seen[r]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
