// Package storetest opens throwaway sqlite databases carrying the real
// migrations, for tests of the repositories, use cases and router.
package storetest

import (
	"context"
	"fmt"

	"github.com/frahmantamala/organization-management/db/migrations"
	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/store/gormstore"
	"github.com/pressly/goose/v3"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database. It is pinned to a single
// connection since every sqlite memory connection is its own database.
func Open() (*gormstore.Database, error) {
	db, err := gormstore.Open(internal.DatabaseConfig{
		Driver:       internal.DriverSQLite,
		Source:       ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		return nil, err
	}
	db.Gorm.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	goose.SetLogger(goose.NopLogger())
	if err := migrations.Up(context.Background(), db.SQL.DB, internal.DriverSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate test database: %w", err)
	}
	return db, nil
}

// Reset removes every row, children first.
func Reset(db *gormstore.Database) error {
	for _, table := range []string{"departments", "companies"} {
		if _, err := db.SQL.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}
