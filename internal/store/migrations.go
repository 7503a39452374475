package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embeddedMigrations embed.FS

type dialect struct {
	name        string
	placeholder string
	timestamp   string
}

var (
	sqliteDialect   = dialect{name: "sqlite", placeholder: "?", timestamp: "TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP"}
	postgresDialect = dialect{name: "postgres", placeholder: "$1", timestamp: "TIMESTAMPTZ NOT NULL DEFAULT now()"}
)

// migrationSource returns dir when set, the embedded files otherwise.
func migrationSource(d dialect, dir string) (fs.FS, error) {
	if dir = strings.TrimSpace(dir); dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(embeddedMigrations, path.Join("migrations", d.name))
}

func applyMigrations(db *sql.DB, d dialect, dir string) error {
	source, err := migrationSource(d, dir)
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	if err := ensureMigrationsTable(db, d); err != nil {
		return err
	}
	applied, err := loadAppliedMigrations(db)
	if err != nil {
		return err
	}
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read migrations: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	for _, filename := range files {
		if applied[filename] {
			continue
		}
		content, err := fs.ReadFile(source, filename)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filename, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if err := applyMigration(db, d, filename, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filename, err)
		}
	}
	return nil
}

func ensureMigrationsTable(db *sql.DB, d dialect) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  installed_at ` + d.timestamp + `
);`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func loadAppliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, d dialect, filename, sqlContent string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	if _, err := tx.Exec(sqlContent); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (filename) VALUES (`+d.placeholder+`)`, filename); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}
