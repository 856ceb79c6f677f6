package service

import (
	"context"

	"github.com/Skotchmaster/health_account/internal/logging"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/repo"
	"github.com/Skotchmaster/health_account/internal/uow"
)

type RoleService struct {
	DB uow.Database
}

func NewRoleService(db uow.Database) *RoleService {
	return &RoleService{DB: db}
}

func (s *RoleService) GetRoles(ctx context.Context, userID int64, onlyActive bool) ([]models.UserRole, error) {
	var rows []models.UserRole
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		rows, err = u.Roles.GetRoles(ctx, userID, onlyActive)
		return err
	})
	return rows, err
}

func (s *RoleService) GetRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	var row *models.UserRole
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		row, err = u.Roles.GetRole(ctx, userID, role)
		return err
	})
	return row, err
}

func (s *RoleService) GetAllRoles(ctx context.Context, roles []models.Role, p repo.Page) ([]models.UserRole, error) {
	var rows []models.UserRole
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		rows, err = u.Roles.GetAllRoles(ctx, roles, false, p)
		return err
	})
	return rows, err
}

// HasRole reports whether the user holds role as an active assignment.
func (s *RoleService) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	var ok bool
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		roles, err := activeRoles(ctx, u, userID)
		if err != nil {
			return err
		}
		ok = hasRole(roles, role)
		return nil
	})
	return ok, err
}

// UpdateRoles makes roles the user's active set in one transaction.
func (s *RoleService) UpdateRoles(ctx context.Context, userID int64, roles []models.Role) ([]models.Role, error) {
	if err := validateRoleSet(roles); err != nil {
		return nil, err
	}
	var active []models.Role
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		active, err = replaceRoles(ctx, u, userID, roles)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("roles_updated", "svc", "role.update", "user_id", userID, "roles", active)
	return active, nil
}

func (s *RoleService) AddRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	if err := validateRoles([]models.Role{role}); err != nil {
		return nil, err
	}
	var row *models.UserRole
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		row, err = u.Roles.AddRole(ctx, userID, role)
		return err
	})
	return row, err
}

func (s *RoleService) RemoveRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	var row *models.UserRole
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		row, err = u.Roles.RemoveRole(ctx, userID, role)
		return err
	})
	return row, err
}

// replaceRoles deactivates every active role of the user, then activates
// roles. The user row stays locked until the transaction ends, so two
// replacements for one user apply in sequence.
func replaceRoles(ctx context.Context, u *uow.DBUnit, userID int64, roles []models.Role) ([]models.Role, error) {
	if err := u.Users.LockUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := u.Roles.RemoveAllRoles(ctx, userID); err != nil {
		return nil, err
	}
	seen := make(map[models.Role]struct{}, len(roles))
	out := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		if _, err := u.Roles.AddOrActivateRole(ctx, userID, r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
