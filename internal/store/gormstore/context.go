package gormstore

import (
	"context"
	"fmt"

	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/pkg/logger"
	"gorm.io/gorm"
)

type provider struct {
	companies   store.CompanyRepository
	departments store.DepartmentRepository
}

// NewProvider binds both repositories to db, which may be the pool or a
// transaction.
func NewProvider(db *gorm.DB) store.Provider {
	return &provider{
		companies:   NewCompanyRepository(db),
		departments: NewDepartmentRepository(db),
	}
}

func (p *provider) Companies() store.CompanyRepository {
	return p.companies
}

func (p *provider) Departments() store.DepartmentRepository {
	return p.departments
}

type DBContext struct {
	db   *gorm.DB
	pool store.Provider
}

func NewDBContext(db *gorm.DB) *DBContext {
	return &DBContext{db: db, pool: NewProvider(db)}
}

func (c *DBContext) Provider() store.Provider {
	return c.pool
}

func (c *DBContext) Transaction(ctx context.Context, fn func(store.Provider) error) error {
	log := logger.From(ctx)

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("failed to begin transaction", "error", tx.Error)
		return fmt.Errorf("%w: begin transaction: %v", store.ErrStorage, tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			if err := tx.Rollback().Error; err != nil {
				log.Error("failed to roll back transaction after panic", "error", err, "panic", p)
			} else {
				log.Error("rolled back transaction after panic", "panic", p)
			}
			panic(p)
		}
	}()

	if err := fn(NewProvider(tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Error("failed to roll back transaction", "rollback_error", rbErr, "original_error", err)
		} else {
			log.Debug("rolled back transaction due to error", "error", err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("failed to commit transaction", "error", err)
		return MapError(err)
	}
	return nil
}

func (c *DBContext) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return MapError(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return MapError(err)
	}
	return nil
}
