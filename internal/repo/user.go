package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
)

const (
	entityUser = "User"
	entityRole = "Role"
)

type GormUserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{DB: db}
}

func (r *GormUserRepository) AddUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err, entityUser)
	}
	return nil
}

func (r *GormUserRepository) GetUser(ctx context.Context, id int64, onlyActive bool) (*models.User, error) {
	return r.first(ctx, onlyActive, "id = ?", id)
}

func (r *GormUserRepository) GetUserByUsername(ctx context.Context, username string, onlyActive bool) (*models.User, error) {
	return r.first(ctx, onlyActive, "username = ?", username)
}

func (r *GormUserRepository) first(ctx context.Context, onlyActive bool, query string, args ...any) (*models.User, error) {
	q := r.DB.WithContext(ctx).Where(query, args...)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var user models.User
	if err := q.First(&user).Error; err != nil {
		return nil, translate(err, entityUser)
	}
	return &user, nil
}

func (r *GormUserRepository) ListUsers(ctx context.Context, f UserFilter, p Page) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{})
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return []models.User{}, nil
		}
		q = q.Where("id IN ?", f.IDs)
	}
	if f.OnlyActive {
		q = q.Where("is_active = ?", true)
	}
	if name := strings.TrimSpace(f.FullName); name != "" {
		q = q.Where("LOWER(first_name || ' ' || last_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var users []models.User
	if err := paginate(q, p).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *GormUserRepository) UpdateUser(ctx context.Context, id int64, fields map[string]any) (*models.User, error) {
	if len(fields) == 0 {
		return nil, apperr.Validation("nothing to update")
	}
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error, entityUser)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NoResult(entityUser)
	}
	return r.GetUser(ctx, id, false)
}

func (r *GormUserRepository) DeactivateUser(ctx context.Context, id int64) (*models.User, error) {
	return r.UpdateUser(ctx, id, map[string]any{"is_active": false})
}

func (r *GormUserRepository) LockUser(ctx context.Context, id int64) error {
	var user models.User
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return translate(err, entityUser)
	}
	return nil
}

func paginate(q *gorm.DB, p Page) *gorm.DB {
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	return q
}

// translate maps the gorm faults callers can act on to apperr kinds.
func translate(err error, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NoResult(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.AlreadyExists(entity)
	default:
		return fmt.Errorf("%s: %w", strings.ToLower(entity), err)
	}
}
