package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp brings the store schema to the latest version. It runs on every
// open, so each migration must be idempotent.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, ".up.sql", false)
}

// MigrateDown tears the schema back down, newest migration first. Only tests
// use this.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, ".down.sql", true)
}

func runMigrations(db *sql.DB, suffix string, reverse bool) error {
	names, err := fs.Glob(migrationFS, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	} else {
		sort.Strings(names)
	}
	for _, name := range names {
		stmt, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		applog.Debug("applied migration", "name", strings.TrimPrefix(name, "migrations/"))
	}
	return nil
}
