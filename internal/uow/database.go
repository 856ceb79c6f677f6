package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/repo"
)

const pgUniqueViolation = "23505"

var tableEntities = map[string]string{
	"users":     "User",
	"user_role": "Role",
}

type GormUOW struct {
	db *gorm.DB
}

func NewGormUOW(db *gorm.DB) *GormUOW {
	return &GormUOW{db: db}
}

// Do runs fn in one transaction. fn returning an error, or panicking, rolls
// the transaction back; otherwise it commits. A unique violation reported
// at commit comes back as *apperr.AlreadyExistsError.
func (w *GormUOW) Do(ctx context.Context, fn func(ctx context.Context, u *DBUnit) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &DBUnit{
			Users: repo.NewUserRepository(tx),
			Roles: repo.NewRoleRepository(tx),
		})
	})
	if err == nil {
		return nil
	}
	return w.translate(err)
}

func (w *GormUOW) translate(err error) error {
	var exists *apperr.AlreadyExistsError
	if errors.As(err, &exists) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperr.AlreadyExists(entityOf(pgErr.TableName))
	}
	if t, ok := w.db.Dialector.(gorm.ErrorTranslator); ok {
		err = t.Translate(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.AlreadyExists("Record")
	}
	return err
}

func entityOf(table string) string {
	if e, ok := tableEntities[table]; ok {
		return e
	}
	return "Record"
}
