// ABOUTME: Tests for versioned schema migrations.
// ABOUTME: Covers fresh databases and databases created before versioning.
package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, m.Name)
		assert.NotEmpty(t, m.Name)
	}
}

func TestMigrateUnversionedDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// A database laid out before schema_version existed.
	legacy, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = legacy.ExecContext(ctx, baseSchema)
	require.NoError(t, err)
	_, err = legacy.ExecContext(ctx, `
		INSERT INTO workouts (name, date, created_at) VALUES ('Old Session', '2024-01-02', '2024-01-02T08:00:00Z')
	`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	db, err := Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, LatestSchemaVersion(), version)

	workouts, err := db.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Old Session", workouts[0].Name)
	assert.Equal(t, "2024-01-02", workouts[0].Date.String())

	conn, err := db.conn()
	require.NoError(t, err)
	var indexes int
	require.NoError(t, conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_personal_records_lookup'",
	).Scan(&indexes))
	assert.Equal(t, 1, indexes)
}

func TestMigrationsRecordEachVersion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	conn, err := db.conn()
	require.NoError(t, err)

	rows, err := conn.QueryContext(ctx, "SELECT version, name FROM schema_version ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var version int
		var name string
		require.NoError(t, rows.Scan(&version, &name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"base_schema", "personal_record_lookup_index"}, names)
}
