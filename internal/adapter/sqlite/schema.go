// Package sqlite materializes fixtures into a SQLite database that mirrors
// the JSON entity model: one table per category, nested values stored as JSON
// text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

const driverName = "sqlite"

// Foreign keys are declared but not enforced; SQLite leaves them off unless
// PRAGMA foreign_keys is set. Validate reports dangling references instead.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT,
		type TEXT,
		size TEXT,
		service_area TEXT,
		station_count INTEGER,
		personnel_count INTEGER,
		vehicle_count INTEGER,
		annual_budget INTEGER,
		contact TEXT,
		location TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS stations (
		id TEXT PRIMARY KEY,
		department_id TEXT REFERENCES departments(id),
		name TEXT NOT NULL,
		station_number INTEGER,
		type TEXT,
		staffing TEXT,
		location TEXT,
		apparatus TEXT,
		area_served_sq_mi REAL,
		built_year INTEGER,
		features TEXT,
		status TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		department_id TEXT REFERENCES departments(id),
		station_id TEXT REFERENCES stations(id),
		email TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		role TEXT,
		rank TEXT,
		phone TEXT,
		permissions TEXT,
		certifications TEXT,
		is_active INTEGER,
		last_login TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS incidents (
		id TEXT PRIMARY KEY,
		department_id TEXT REFERENCES departments(id),
		station_id TEXT REFERENCES stations(id),
		call_number TEXT,
		type TEXT,
		category TEXT,
		priority INTEGER,
		location TEXT,
		caller_info TEXT,
		times TEXT,
		units TEXT,
		outcome TEXT,
		notes TEXT,
		created_at TEXT
	)`,
}

// Tables lists the mirror's tables in insertion order.
func Tables() []string {
	out := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		out = append(out, string(c))
	}
	return out
}

// Setup prepares the database file at path and returns an open handle. Parent
// directories are created; with overwrite an existing file is removed first.
// The schema statements are idempotent.
func Setup(ctx context.Context, path string, overwrite bool) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	if overwrite {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove database: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return db, nil
}

// Open opens an existing database without touching its schema.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}
