// Package migrations embeds the goose SQL migrations so the binary and the
// test databases apply the same schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

const TableName = "schema_migrations"

// Dialect maps a configured database driver to the goose dialect name.
func Dialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	if err := configure(driver); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back the latest applied migration.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	if err := configure(driver); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func configure(driver string) error {
	goose.SetBaseFS(FS)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(Dialect(driver)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}
