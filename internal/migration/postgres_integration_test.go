package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	"github.com/lib/pq"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/migrations"
)

// openPostgresSchema connects to POSTGRES_TEST_URL with the application
// schema on the search path. A single connection keeps the SET in effect for
// every statement the runner issues.
// Example: POSTGRES_TEST_URL="postgres://streakline_user@localhost:5432/streakline_test?sslmode=disable"
func openPostgresSchema(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	schema := pq.QuoteIdentifier(constants.AppName)
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, err := db.Exec("SET search_path TO " + schema); err != nil {
		t.Fatalf("failed to set search_path: %v", err)
	}
	return db
}

func postgresRunner(t *testing.T, db *sql.DB) *Runner {
	t.Helper()
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("failed to open embedded postgres migrations: %v", err)
	}
	return NewRunner(db, sub, DialectPostgres)
}

func TestPostgresEmbeddedMigrations(t *testing.T) {
	db := openPostgresSchema(t)
	runner := postgresRunner(t, db)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	for _, table := range []string{"settings", "goals", "completion_events", "milestones", "schema_version"} {
		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = $1 AND table_name = $2
			)`, constants.AppName, table).Scan(&exists)
		if err != nil {
			t.Fatalf("failed to look up table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s missing from schema %s", table, constants.AppName)
		}
	}

	status, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.UpToDate() {
		t.Errorf("expected schema up to date, got %+v", status)
	}
}

func TestPostgresEmbeddedMigrationsRerun(t *testing.T) {
	db := openPostgresSchema(t)
	runner := postgresRunner(t, db)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first ApplyMigrations failed: %v", err)
	}
	before, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("rerun applied %d migrations, want 0", applied)
	}

	after, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if after != before {
		t.Errorf("version changed on rerun: %d -> %d", before, after)
	}
}

// Every statement in 001_init uses IF NOT EXISTS, so replaying it over an
// existing schema must succeed.
func TestPostgresInitReplayOverExistingSchema(t *testing.T) {
	db := openPostgresSchema(t)
	runner := postgresRunner(t, db)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	migs, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migs) == 0 {
		t.Fatal("no embedded postgres migrations found")
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin: %v", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(migs[0].SQL); err != nil {
		t.Errorf("replaying %s failed: %v", migs[0].Name, err)
	}
}
