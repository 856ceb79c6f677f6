package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/hash"
	"github.com/Skotchmaster/health_account/internal/logging"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/repo"
	"github.com/Skotchmaster/health_account/internal/uow"
)

// Account is a user together with its active roles.
type Account struct {
	User  models.User
	Roles []models.Role
}

type NewUser struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	// Roles defaults to [user] when empty.
	Roles []models.Role
}

// UserUpdate carries the fields to change; nil means unchanged. A non-nil
// Roles replaces the active role set.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Username  *string
	Password  *string
	Roles     []models.Role
}

func (u UserUpdate) empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Username == nil && u.Password == nil && u.Roles == nil
}

type UserService struct {
	DB     uow.Database
	Hasher hash.Hasher
}

func NewUserService(db uow.Database, h hash.Hasher) *UserService {
	return &UserService{DB: db, Hasher: h}
}

func (s *UserService) AddUser(ctx context.Context, in NewUser) (*Account, error) {
	l := logging.FromContext(ctx).With("svc", "user.add", "username", in.Username)

	if err := hash.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := hash.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	roles := in.Roles
	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}
	if err := validateRoles(roles); err != nil {
		return nil, err
	}

	pwHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		l.Error("add_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	var acc *Account
	err = s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		user := &models.User{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Username:  in.Username,
			Password:  pwHash,
			IsActive:  true,
		}
		if err := u.Users.AddUser(ctx, user); err != nil {
			return err
		}
		active, err := replaceRoles(ctx, u, user.ID, roles)
		if err != nil {
			return err
		}
		acc = &Account{User: *user, Roles: active}
		return nil
	})
	if err != nil {
		l.Warn("add_user_failed", "error", err)
		return nil, err
	}
	l.Info("user_added", "user_id", acc.User.ID)
	return acc, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64, onlyActive bool) (*models.User, error) {
	var user *models.User
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		user, err = u.Users.GetUser(ctx, id, onlyActive)
		return err
	})
	return user, err
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string, onlyActive bool) (*models.User, error) {
	var user *models.User
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		user, err = u.Users.GetUserByUsername(ctx, username, onlyActive)
		return err
	})
	return user, err
}

// GetAccount returns the user with its active roles.
func (s *UserService) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var acc *Account
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		user, err := u.Users.GetUser(ctx, id, true)
		if err != nil {
			return err
		}
		roles, err := activeRoles(ctx, u, user.ID)
		if err != nil {
			return err
		}
		acc = &Account{User: *user, Roles: roles}
		return nil
	})
	return acc, err
}

func (s *UserService) GetAllUsers(ctx context.Context, onlyActive bool, p repo.Page) ([]Account, error) {
	return s.listAccounts(ctx, repo.UserFilter{OnlyActive: onlyActive}, p)
}

func (s *UserService) GetUsersByIDs(ctx context.Context, ids []int64, onlyActive bool, fullName string, p repo.Page) ([]Account, error) {
	if ids == nil {
		ids = []int64{}
	}
	return s.listAccounts(ctx, repo.UserFilter{IDs: ids, OnlyActive: onlyActive, FullName: fullName}, p)
}

func (s *UserService) listAccounts(ctx context.Context, f repo.UserFilter, p repo.Page) ([]Account, error) {
	var out []Account
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		users, err := u.Users.ListUsers(ctx, f, p)
		if err != nil {
			return err
		}
		out = make([]Account, 0, len(users))
		for _, user := range users {
			roles, err := activeRoles(ctx, u, user.ID)
			if err != nil {
				return err
			}
			out = append(out, Account{User: user, Roles: roles})
		}
		return nil
	})
	return out, err
}

// ListDoctors pages through active users holding an active doctor role.
func (s *UserService) ListDoctors(ctx context.Context, fullName string, p repo.Page) ([]Account, error) {
	var ids []int64
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		rows, err := u.Roles.GetAllRoles(ctx, []models.Role{models.RoleDoctor}, true, repo.Page{})
		if err != nil {
			return err
		}
		ids = make([]int64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetUsersByIDs(ctx, ids, true, fullName, p)
}

func (s *UserService) GetDoctor(ctx context.Context, id int64) (*Account, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasRole(acc.Roles, models.RoleDoctor) {
		return nil, apperr.NoResult("Doctor")
	}
	return acc, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*Account, error) {
	l := logging.FromContext(ctx).With("svc", "user.update", "user_id", id)

	if upd.empty() {
		return nil, apperr.Validation("nothing to update")
	}
	fields := make(map[string]any, 4)
	if upd.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*upd.LastName)
	}
	if upd.Username != nil {
		if err := hash.ValidateUsername(*upd.Username); err != nil {
			return nil, err
		}
		fields["username"] = *upd.Username
	}
	if upd.Password != nil {
		if err := hash.ValidatePassword(*upd.Password); err != nil {
			return nil, err
		}
		pwHash, err := s.Hasher.Hash(*upd.Password)
		if err != nil {
			l.Error("update_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		fields["password"] = pwHash
	}
	if upd.Roles != nil {
		if err := validateRoleSet(upd.Roles); err != nil {
			return nil, err
		}
	}

	var acc *Account
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var (
			user *models.User
			err  error
		)
		if len(fields) > 0 {
			user, err = u.Users.UpdateUser(ctx, id, fields)
		} else {
			user, err = u.Users.GetUser(ctx, id, false)
		}
		if err != nil {
			return err
		}

		var roles []models.Role
		if upd.Roles != nil {
			roles, err = replaceRoles(ctx, u, id, upd.Roles)
		} else {
			roles, err = activeRoles(ctx, u, id)
		}
		if err != nil {
			return err
		}
		acc = &Account{User: *user, Roles: roles}
		return nil
	})
	if err != nil {
		l.Warn("update_user_failed", "error", err)
		return nil, err
	}
	return acc, nil
}

// DeleteUser deactivates the user. Role rows are kept.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := s.DB.Do(ctx, func(ctx context.Context, u *uow.DBUnit) error {
		var err error
		user, err = u.Users.DeactivateUser(ctx, id)
		return err
	})
	if err == nil {
		logging.FromContext(ctx).Info("user_deactivated", "svc", "user.delete", "user_id", id)
	}
	return user, err
}

func activeRoles(ctx context.Context, u *uow.DBUnit, userID int64) ([]models.Role, error) {
	rows, err := u.Roles.GetRoles(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	out := make([]models.Role, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Role)
	}
	return out, nil
}

func hasRole(roles []models.Role, want models.Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func validateRoleSet(roles []models.Role) error {
	if len(roles) == 0 {
		return apperr.Validation("at least one role is required")
	}
	return validateRoles(roles)
}

func validateRoles(roles []models.Role) error {
	for _, r := range roles {
		if !r.Valid() {
			return apperr.Validation("unknown role %q", r)
		}
	}
	return nil
}
