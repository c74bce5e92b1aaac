//go:build integration

package data

import (
	"path/filepath"
	"testing"
	"trivia-api/internal/config"

	"github.com/jmoiron/sqlx"
)

// setupTestDB migrates a fresh SQLite file database and returns a handle to it.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "trivia.db"),
	}
	if err := ApplyMigrations(cfg, "../../migrations"); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	db, err := NewDB(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	cfg := config.DBConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "trivia.db"),
	}
	if err := ApplyMigrations(cfg, "../../migrations"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := ApplyMigrations(cfg, "../../migrations"); err != nil {
		t.Fatalf("second run should be a no-op, got: %v", err)
	}
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	if _, err := NewDB(config.DBConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}

func TestMigrateURL(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.DBConfig
		want    string
		wantErr bool
	}{
		{"sqlite", config.DBConfig{Driver: DriverSQLite, DSN: "trivia.db"}, "sqlite3://trivia.db", false},
		{"mysql adds multiStatements", config.DBConfig{Driver: DriverMySQL, DSN: "u:p@tcp(db:3306)/trivia"}, "mysql://u:p@tcp(db:3306)/trivia?multiStatements=true", false},
		{"mysql keeps params", config.DBConfig{Driver: DriverMySQL, DSN: "u:p@tcp(db:3306)/trivia?parseTime=true"}, "mysql://u:p@tcp(db:3306)/trivia?parseTime=true&multiStatements=true", false},
		{"postgres", config.DBConfig{Driver: DriverPostgres, DSN: "postgres://u:p@db:5432/trivia"}, "pgx5://u:p@db:5432/trivia", false},
		{"postgres keyword dsn", config.DBConfig{Driver: DriverPostgres, DSN: "host=db user=u"}, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := migrateURL(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("want %q; got %q", tc.want, got)
			}
		})
	}
}
