package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"inventoryTracker/internal/auth"
	"inventoryTracker/internal/db"
)

// TestSecret signs session tokens in tests.
const TestSecret = "test-secret"

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The handle is closed through t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache keeps one database alive across the pool's connections.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenTempDB opens a migrated database file under t.TempDir and returns it with its path.
func OpenTempDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, path
}

// SessionToken returns a signed token for the given user.
func SessionToken(t *testing.T, userID int64, username string) string {
	t.Helper()
	tok, err := auth.IssueToken(&auth.Session{UserID: userID, Username: username}, TestSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}
