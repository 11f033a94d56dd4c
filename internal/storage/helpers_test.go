// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Temp-dir databases with a fixed clock and small builders.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/stretchr/testify/require"
)

// testNow is Wednesday 2025-06-18; its week starts Sunday 2025-06-15.
var testNow = time.Date(2025, time.June, 18, 10, 30, 0, 0, time.UTC)

func testToday() models.Date {
	return models.DateOf(testNow)
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fitlog.db")
	db, err := Open(context.Background(), dbPath, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createExercise(t *testing.T, db *DB, category models.Category) *models.Exercise {
	t.Helper()

	e := models.NewExercise(gofakeit.Word()+" "+gofakeit.Word(), category, "Chest", "Triceps")
	_, err := db.CreateExercise(context.Background(), e)
	require.NoError(t, err)
	return e
}

func createWorkout(t *testing.T, db *DB, date models.Date) *models.Workout {
	t.Helper()

	w := models.NewWorkout(gofakeit.Sentence(2), date)
	_, err := db.CreateWorkout(context.Background(), w)
	require.NoError(t, err)
	return w
}

func addExercise(t *testing.T, db *DB, workoutID, exerciseID int64, order int) int64 {
	t.Helper()

	id, err := db.AddExerciseToWorkout(context.Background(), workoutID, exerciseID, order)
	require.NoError(t, err)
	return id
}

func addSet(t *testing.T, db *DB, workoutExerciseID int64, s models.Set) *models.Set {
	t.Helper()

	s.WorkoutExerciseID = workoutExerciseID
	_, err := db.AddSet(context.Background(), &s)
	require.NoError(t, err)
	return &s
}

func builtIn(t *testing.T, db *DB, name string) *models.Exercise {
	t.Helper()

	list, err := db.ListExercises(context.Background(), ExerciseFilter{Search: name})
	require.NoError(t, err)
	for _, e := range list {
		if e.Name == name && !e.IsCustom {
			return e
		}
	}
	t.Fatalf("built-in exercise %q not found", name)
	return nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
