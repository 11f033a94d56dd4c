// ABOUTME: Tests for database lifecycle, schema versioning and seeding.
// ABOUTME: Covers repeated init, failed init and use after close.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBuiltIns(t *testing.T, db *DB) int {
	t.Helper()

	list, err := db.ListExercises(context.Background(), ExerciseFilter{})
	require.NoError(t, err)
	n := 0
	for _, e := range list {
		if !e.IsCustom {
			n++
		}
	}
	return n
}

func TestOpenAppliesMigrationsAndSeeds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, LatestSchemaVersion(), version)

	assert.True(t, db.Ready())
	assert.Equal(t, DefaultExerciseCount(), countBuiltIns(t, db))

	info, err := os.Stat(db.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestReopenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "fitlog.db")

	db, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = db.CreateExercise(ctx, models.NewExercise("Sled Push", models.CategoryStrength, "Legs"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DefaultExerciseCount(), countBuiltIns(t, db), "defaults are seeded once")

	list, err := db.ListExercises(ctx, ExerciseFilter{Search: "sled"})
	require.NoError(t, err)
	require.Len(t, list, 1, "existing rows survive a second init")

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, LatestSchemaVersion(), version)
}

func TestInitIsNoOpWhenReady(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Init(context.Background()))
	assert.True(t, db.Ready())
}

func TestOperationsBeforeInit(t *testing.T) {
	ctx := context.Background()
	db := New(filepath.Join(t.TempDir(), "fitlog.db"))

	assert.False(t, db.Ready())

	_, err := db.GetExercise(ctx, 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.CreateWorkout(ctx, models.NewWorkout("Day 1", testToday()))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.AddSet(ctx, &models.Set{WorkoutExerciseID: 1})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.GetWorkoutStats(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.ExportSnapshot(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestInitFailureIsReported(t *testing.T) {
	ctx := context.Background()

	// A regular file where the data directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	db := New(filepath.Join(blocker, "fitlog.db"))
	err := db.Init(ctx)
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Error(t, db.InitErr())
	assert.False(t, db.Ready())

	_, err = db.ListWorkouts(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestCloseMakesStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "fitlog.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "closing twice is harmless")

	_, err = db.ListTemplates(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	require.NoError(t, db.Init(ctx), "init after close reopens the file")
	assert.True(t, db.Ready())
	require.NoError(t, db.Close())
}
