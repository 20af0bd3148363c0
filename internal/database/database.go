package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schema string

var DB *sql.DB

// Open opens (or creates) the SQLite database at path, enables foreign key
// enforcement and applies the embedded schema. Pass ":memory:" for an
// in-memory database (used by tests).
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("could not create data directory %s: %w", dir, err)
			}
		}
	}

	// Enforce FKs on every connection; cascade deletes depend on it.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)"
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", path, err)
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// ":memory:" databases from silently splitting per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not apply database schema: %w", err)
	}

	return db, nil
}

// InitDB initializes the shared database connection
func InitDB(path string) {
	var err error
	DB, err = Open(path)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}
}

// GetDB returns the database connection pool
func GetDB() *sql.DB {
	return DB
}
