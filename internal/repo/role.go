package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
)

type GormRoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{DB: db}
}

func (r *GormRoleRepository) AddRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	row := models.UserRole{UserID: userID, Role: role, IsActive: true}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, entityRole)
	}
	return &row, nil
}

// AddOrActivateRole inserts (userID, role) or flips an existing row back to
// active. The (user_id, role) unique index is the conflict target.
func (r *GormRoleRepository) AddOrActivateRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	row := models.UserRole{UserID: userID, Role: role, IsActive: true}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
		DoUpdates: clause.Assignments(map[string]any{"is_active": true}),
	}).Create(&row).Error
	if err != nil {
		return nil, translate(err, entityRole)
	}
	return r.GetRole(ctx, userID, role)
}

func (r *GormRoleRepository) RemoveRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	res := r.DB.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Update("is_active", false)
	if res.Error != nil {
		return nil, translate(res.Error, entityRole)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NoResult(entityRole)
	}
	return r.GetRole(ctx, userID, role)
}

func (r *GormRoleRepository) RemoveAllRoles(ctx context.Context, userID int64) error {
	err := r.DB.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
	if err != nil {
		return translate(err, entityRole)
	}
	return nil
}

func (r *GormRoleRepository) GetRole(ctx context.Context, userID int64, role models.Role) (*models.UserRole, error) {
	var row models.UserRole
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).First(&row).Error; err != nil {
		return nil, translate(err, entityRole)
	}
	return &row, nil
}

func (r *GormRoleRepository) GetRoles(ctx context.Context, userID int64, onlyActive bool) ([]models.UserRole, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.UserRole
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get roles: %w", err)
	}
	return rows, nil
}

func (r *GormRoleRepository) GetAllRoles(ctx context.Context, roles []models.Role, onlyActive bool, p Page) ([]models.UserRole, error) {
	q := r.DB.WithContext(ctx).Model(&models.UserRole{})
	if len(roles) > 0 {
		q = q.Where("role IN ?", roles)
	}
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.UserRole
	if err := paginate(q, p).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get all roles: %w", err)
	}
	return rows, nil
}
