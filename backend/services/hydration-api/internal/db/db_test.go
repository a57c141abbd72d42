package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libdb "hydrohero/backend/libs/db"
)

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id INT);\n\n CREATE INDEX b ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX b ON a (id)"}, stmts)
}

func TestSchemaFile(t *testing.T) {
	name, err := schemaFile("pgx")
	require.NoError(t, err)
	assert.Equal(t, "schema/postgres.sql", name)

	name, err = schemaFile("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "schema/sqlite.sql", name)

	_, err = schemaFile("oracle")
	require.ErrorIs(t, err, libdb.ErrUnsupportedDriver)
}

func TestOpenSQLiteAppliesSchemaIdempotently(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := Open(ctx, libdb.DriverSQLite, filepath.Join(t.TempDir(), "hydration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(ctx, sqlDB, libdb.DriverSQLite))

	for _, table := range []string{"user_profiles", "intake_events", "device_status"} {
		var name string
		err := sqlDB.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
