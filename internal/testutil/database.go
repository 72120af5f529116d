package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package

	"github.com/armyblogger/stock-tracker/internal/database"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by running the real goose migrations, so tests
// exercise the same DDL as production. The database is automatically
// cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SeedSnapshot stores raw snapshot bytes under the portfolio key, bypassing
// the service. Useful for load and corrupt-state tests.
func SeedSnapshot(t *testing.T, db *sql.DB, value string) {
	t.Helper()

	query := `
		INSERT INTO snapshot ("key", value, updated_at)
		VALUES ('portfolio', ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value
	`
	if _, err := db.Exec(query, value); err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}
}

// ReadSnapshot returns the raw stored snapshot value, failing the test when
// no snapshot exists.
func ReadSnapshot(t *testing.T, db *sql.DB) string {
	t.Helper()

	var value string
	err := db.QueryRow(`SELECT value FROM snapshot WHERE "key" = 'portfolio'`).Scan(&value)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	return value
}
