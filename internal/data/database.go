package data

import (
	"fmt"
	"path/filepath"
	"strings"
	"trivia-api/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// NewDB creates a new database connection pool for the configured driver.
func NewDB(cfg config.DBConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// sqlx.Connect opens a connection and pings it to verify it's alive.
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer; in-memory databases are per connection.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// ApplyMigrations runs all up migrations found in migrationsPath/<driver>.
func ApplyMigrations(cfg config.DBConfig, migrationsPath string) error {
	migrateDSN, err := migrateURL(cfg)
	if err != nil {
		return err
	}

	// The migrate library expects an absolute file:// source URL.
	absPath, err := filepath.Abs(filepath.Join(migrationsPath, cfg.Driver))
	if err != nil {
		return fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	sourceURL := fmt.Sprintf("file://%s", absPath)

	m, err := migrate.New(sourceURL, migrateDSN)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// migrateURL converts a driver DSN into the URL form golang-migrate expects.
func migrateURL(cfg config.DBConfig) (string, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return "sqlite3://" + cfg.DSN, nil
	case DriverMySQL:
		dsn := cfg.DSN
		if !strings.Contains(dsn, "multiStatements=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "multiStatements=true"
		}
		return "mysql://" + dsn, nil
	case DriverPostgres:
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(cfg.DSN, prefix) {
				return "pgx5://" + strings.TrimPrefix(cfg.DSN, prefix), nil
			}
		}
		return "", fmt.Errorf("postgres dsn must be a postgres:// url, got %q", cfg.DSN)
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
