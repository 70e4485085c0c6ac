package gormstore

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/organization-management/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns one connection pool, shared by the gorm repositories and the
// raw sqlx handle used for probes and maintenance.
type Database struct {
	Driver string
	Gorm   *gorm.DB
	SQL    *sqlx.DB
}

// Open connects to the configured driver and verifies the connection.
func Open(cfg internal.DatabaseConfig) (*Database, error) {
	driverName, dsn := "pgx", cfg.Source
	if cfg.Driver == internal.DriverSQLite {
		driverName, dsn = "sqlite3", SQLiteDSN(cfg.Source)
	}

	sqlDB, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	var dialector gorm.Dialector
	if cfg.Driver == internal.DriverSQLite {
		dialector = sqlite.New(sqlite.Config{Conn: sqlDB.DB})
	} else {
		dialector = postgres.New(postgres.Config{Conn: sqlDB.DB})
	}

	gormDB, err := gorm.Open(dialector, GormConfig(gormlogger.Warn))
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Database{Driver: cfg.Driver, Gorm: gormDB, SQL: sqlDB}, nil
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

// GormConfig is shared by the server and the test databases so constraint
// errors translate the same way everywhere.
func GormConfig(level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(level),
	}
}

// SQLiteDSN enables foreign key enforcement, which sqlite leaves off per connection.
func SQLiteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") || strings.Contains(source, "_fk=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}
