// Package database provides SQLite access and migrations for the host audit trail.
package database

import (
	"database/sql"
	"os"
	"path/filepath"

	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection with additional functionality.
type DB struct {
	*sql.DB
}

// New creates a new database connection and ensures the parent directory exists.
// The special path ":memory:" opens a private in-memory database.
func New(dbPath string) (*DB, error) {
	dsn := ":memory:"
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
		dsn = dbPath + "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// Audit writes come from concurrent launches; one connection keeps
	// an in-memory database shared and avoids SQLITE_BUSY on files.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// Migrate runs all database migrations.
func (db *DB) Migrate() error {
	return runMigrations(db.DB)
}
