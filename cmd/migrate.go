package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/organization-management/db/migrations"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded db migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := initDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()

	if migrateRollback {
		return migrations.Down(ctx, db.SQL.DB, cfg.Database.Driver)
	}
	return migrations.Up(ctx, db.SQL.DB, cfg.Database.Driver)
}
