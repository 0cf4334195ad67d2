package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// New opens (creating if needed) the local SQLite database and bootstraps
// the key-value table backing blob persistence.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Single process, single writer.
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return db, nil
}
