package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	libdb "hydrohero/backend/libs/db"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Open connects using the shared helper and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	sqlDB, err := libdb.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, sqlDB, driver); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Migrate creates missing tables. Statements are idempotent.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver string) error {
	name, err := schemaFile(driver)
	if err != nil {
		return err
	}
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("db: read schema: %w", err)
	}
	for _, stmt := range splitStatements(string(raw)) {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: apply schema: %w", err)
		}
	}
	return nil
}

func schemaFile(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case libdb.DriverPostgres, "postgres", "":
		return "schema/postgres.sql", nil
	case libdb.DriverSQLite, "sqlite":
		return "schema/sqlite.sql", nil
	default:
		return "", libdb.ErrUnsupportedDriver
	}
}

func splitStatements(schema string) []string {
	var stmts []string
	for _, part := range strings.Split(schema, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
