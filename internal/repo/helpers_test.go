package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/health_account/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.UserRole{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func seedUser(t *testing.T, r *GormUserRepository, username, first, last string) *models.User {
	t.Helper()
	u := &models.User{FirstName: first, LastName: last, Username: username, Password: "hash", IsActive: true}
	require.NoError(t, r.AddUser(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}
