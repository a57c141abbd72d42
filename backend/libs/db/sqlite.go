package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// NewSQLiteDB opens a file-backed SQLite database for local runs and tests.
// SQLite allows a single writer, so the pool is pinned to one connection.
func NewSQLiteDB(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("db: empty sqlite path")
	}

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := ping(db); err != nil {
		db.Close()
		return nil, err
	}

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("db: %s: %w", pragma, err)
		}
	}
	return db, nil
}
