package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"inventoryTracker/internal/logger"
)

// DefaultPath is the database file used when no path is configured.
const DefaultPath = "inventory.db"

// Open opens (or creates) a local SQLite database file and applies pending migrations.
// It uses versioned .sql files under internal/db/migrations following the pattern:
//
//	0001_name.up.sql / 0001_name.down.sql
//
// A version may register a Go step instead of an up script (see goMigrations).
// Only new migrations are applied, so Open is safe to call on every startup.
// Use RollbackLast to revert the last applied migration.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	d, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if err := applyMigrations(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// dsn appends per-connection pragmas. PRAGMA statements issued through *sql.DB
// only reach one pooled connection, foreign keys must hold on all of them.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func ensureDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}

// RollbackLast rolls back the most recently applied migration, if its down script exists.
// It returns the reverted version, or 0 when nothing was applied. Open re-applies
// whatever is missing, so a rollback only lasts until the next Open.
// Versions without a down script, such as the product_no backfill, cannot be
// rolled back.
func RollbackLast(d *sql.DB) (int, error) {
	if d == nil {
		return 0, errors.New("nil db")
	}
	if err := ensureMigrationsTable(d); err != nil {
		return 0, err
	}
	var version int
	err := d.QueryRow(`SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	migs, err := loadMigrations()
	if err != nil {
		return 0, err
	}
	m, ok := migs[version]
	if !ok || m.downFile == "" {
		return 0, fmt.Errorf("migration %04d cannot be rolled back", version)
	}
	sqlText, err := migrationsFS.ReadFile(m.downFile)
	if err != nil {
		return 0, err
	}
	tx, err := d.Begin()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(string(sqlText)); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("rollback %04d failed: %w", version, err)
	}
	if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, version); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.Noticef("rolled back migration %04d_%s", version, m.name)
	return version, nil
}

// AppliedVersions lists applied migration versions in ascending order.
func AppliedVersions(d *sql.DB) ([]int, error) {
	got, err := appliedVersions(d)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(got))
	for v := range got {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	name     string
	upFile   string // path inside embedded FS
	downFile string // path inside embedded FS
	upFunc   func(*sql.Tx) error
}

// goMigrations are up steps that need to inspect the live schema before changing it.
var goMigrations = map[int]struct {
	name string
	up   func(*sql.Tx) error
}{
	2: {name: "product_no", up: addProductNo},
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.(up|down)\.sql$`)

func loadMigrations() (map[int]migration, error) {
	entries := map[int]migration{}
	list, err := stdfs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		m := migFileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		verStr, migName, kind := m[1], m[2], m[3]
		var ver int
		if _, err := fmt.Sscanf(verStr, "%04d", &ver); err != nil {
			continue
		}
		item := entries[ver]
		item.version = ver
		item.name = migName
		p := "migrations/" + name
		if kind == "up" {
			item.upFile = p
		} else {
			item.downFile = p
		}
		entries[ver] = item
	}
	for ver, g := range goMigrations {
		item := entries[ver]
		if item.upFile != "" {
			return nil, fmt.Errorf("migration %04d has both a go step and an up script", ver)
		}
		item.version = ver
		item.name = g.name
		item.upFunc = g.up
		entries[ver] = item
	}
	return entries, nil
}

func ensureMigrationsTable(d *sql.DB) error {
	_, err := d.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        applied_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
    )`)
	return err
}

func appliedVersions(d *sql.DB) (map[int]bool, error) {
	if err := ensureMigrationsTable(d); err != nil {
		return nil, err
	}
	rows, err := d.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	got := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		got[v] = true
	}
	return got, rows.Err()
}

func applyMigrations(d *sql.DB) error {
	migs, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(d)
	if err != nil {
		return err
	}
	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	for _, v := range versions {
		if applied[v] {
			continue
		}
		m := migs[v]
		if m.upFunc == nil && strings.TrimSpace(m.upFile) == "" {
			return fmt.Errorf("missing up migration for version %04d", v)
		}
		tx, err := d.Begin()
		if err != nil {
			return err
		}
		if err := runUp(tx, m); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %04d failed: %w", v, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES(?)`, v); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		logger.Infof("applied migration %04d_%s", v, m.name)
	}
	return nil
}

func runUp(tx *sql.Tx, m migration) error {
	if m.upFunc != nil {
		return m.upFunc(tx)
	}
	sqlText, err := migrationsFS.ReadFile(m.upFile)
	if err != nil {
		return err
	}
	_, err = tx.Exec(string(sqlText))
	return err
}
