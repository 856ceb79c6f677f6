package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/repo"
)

func TestRoleService_UpdateRoles_ReplacesActiveSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acc := addUser(t, env, "johndoe", "John", "Doe", models.RoleUser, models.RoleDoctor)

	active, err := env.roles.UpdateRoles(ctx, acc.User.ID, []models.Role{models.RoleDoctor, models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleDoctor, models.RoleAdmin}, active)

	rows, err := env.roles.GetRoles(ctx, acc.User.ID, true)
	require.NoError(t, err)
	got := make([]models.Role, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Role)
	}
	assert.ElementsMatch(t, []models.Role{models.RoleDoctor, models.RoleAdmin}, got)

	history, err := env.roles.GetRoles(ctx, acc.User.ID, false)
	require.NoError(t, err)
	assert.Len(t, history, 3, "deactivated rows are kept")
}

func TestRoleService_UpdateRoles_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acc := addUser(t, env, "johndoe", "John", "Doe")

	for i := 0; i < 2; i++ {
		_, err := env.roles.UpdateRoles(ctx, acc.User.ID, []models.Role{models.RoleManager})
		require.NoError(t, err)
	}

	rows, err := env.roles.GetAllRoles(ctx, []models.Role{models.RoleManager}, repo.Page{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsActive)
}

func TestRoleService_UpdateRoles_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acc := addUser(t, env, "johndoe", "John", "Doe")

	_, err := env.roles.UpdateRoles(ctx, acc.User.ID, nil)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = env.roles.UpdateRoles(ctx, acc.User.ID, []models.Role{"root"})
	assert.ErrorAs(t, err, &ve)

	_, err = env.roles.UpdateRoles(ctx, acc.User.ID+50, []models.Role{models.RoleUser})
	var nr *apperr.NoResultError
	assert.ErrorAs(t, err, &nr)

	ok, err := env.roles.HasRole(ctx, acc.User.ID, models.RoleUser)
	require.NoError(t, err)
	assert.True(t, ok, "failed update leaves roles untouched")
}

func TestRoleService_AddRemoveRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acc := addUser(t, env, "johndoe", "John", "Doe")

	_, err := env.roles.AddRole(ctx, acc.User.ID, models.RoleUser)
	var ae *apperr.AlreadyExistsError
	require.ErrorAs(t, err, &ae)

	row, err := env.roles.AddRole(ctx, acc.User.ID, models.RoleDoctor)
	require.NoError(t, err)
	assert.True(t, row.IsActive)

	row, err = env.roles.RemoveRole(ctx, acc.User.ID, models.RoleDoctor)
	require.NoError(t, err)
	assert.False(t, row.IsActive)

	got, err := env.roles.GetRole(ctx, acc.User.ID, models.RoleDoctor)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
