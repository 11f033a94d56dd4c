// ABOUTME: Tests for saving complete workouts and the logging flow end to end.
// ABOUTME: A failed save must leave no partial workout behind.
package storage

import (
	"context"
	"testing"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFlowEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	today := testToday()

	bench := models.NewExercise("Bench Press", models.CategoryStrength, "Chest")
	_, err := db.CreateExercise(ctx, bench)
	require.NoError(t, err)

	w := models.NewWorkout("Day 1", today)
	_, err = db.CreateWorkout(ctx, w)
	require.NoError(t, err)
	weID := addExercise(t, db, w.ID, bench.ID, 0)

	var created []float64
	for _, weight := range []float64{135, 145} {
		addSet(t, db, weID, models.LoadSet(5, weight))
		isNew, err := db.CheckAndCreateRecord(ctx, bench.ID, models.RecordWeight, weight, &w.ID, today)
		require.NoError(t, err)
		if isNew {
			created = append(created, weight)
		}
	}
	assert.Equal(t, []float64{135, 145}, created)

	stats, err := db.GetWorkoutStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1400.0, stats.TotalVolume)

	full, err := db.GetWorkoutWithExercises(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, full.Exercises, 1)
	require.Len(t, full.Exercises[0].Sets, 2)
	assert.Equal(t, 1, full.Exercises[0].Sets[0].SetNumber)
	assert.Equal(t, 2, full.Exercises[0].Sets[1].SetNumber)
}

func TestSaveWorkout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	bench := builtIn(t, db, "Bench Press")
	running := builtIn(t, db, "Running")
	curls := builtIn(t, db, "Bicep Curls")

	draft := &models.WorkoutDraft{
		Name:     "Monday",
		Date:     testToday(),
		Duration: intPtr(50),
		Exercises: []models.DraftExercise{
			{ExerciseID: bench.ID, Sets: []models.Set{
				models.LoadSet(5, 100), models.LoadSet(5, 110), models.LoadSet(5, 105),
			}},
			{ExerciseID: curls.ID},
			{ExerciseID: running.ID, Sets: []models.Set{models.CardioSet(5000, 1500)}},
		},
	}

	result, err := db.SaveWorkout(ctx, draft)
	require.NoError(t, err)
	require.NotZero(t, result.WorkoutID)

	require.Len(t, result.Records, 3)
	assert.Equal(t, models.RecordWeight, result.Records[0].RecordType)
	assert.Equal(t, 100.0, result.Records[0].Value)
	assert.Equal(t, 110.0, result.Records[1].Value)
	assert.Equal(t, models.RecordDistance, result.Records[2].RecordType)
	assert.Equal(t, result.WorkoutID, *result.Records[2].WorkoutID)

	full, err := db.GetWorkoutWithExercises(ctx, result.WorkoutID)
	require.NoError(t, err)
	assert.Equal(t, 50, *full.Duration)
	require.Len(t, full.Exercises, 2, "exercises without sets are skipped")
	assert.Equal(t, 0, full.Exercises[0].OrderIndex)
	assert.Equal(t, 1, full.Exercises[1].OrderIndex)
	assert.Equal(t, "Running", full.Exercises[1].Exercise.Name)
	for i, s := range full.Exercises[0].Sets {
		assert.Equal(t, i+1, s.SetNumber)
	}

	// A second, lighter session sets no new records.
	draft.Exercises = draft.Exercises[:1]
	draft.Exercises[0].Sets = []models.Set{models.LoadSet(5, 110)}
	again, err := db.SaveWorkout(ctx, draft)
	require.NoError(t, err)
	assert.Empty(t, again.Records)
}

func TestSaveWorkoutRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	squat := builtIn(t, db, "Squat")

	draft := &models.WorkoutDraft{
		Name: "Broken",
		Date: testToday(),
		Exercises: []models.DraftExercise{
			{ExerciseID: squat.ID, Sets: []models.Set{models.LoadSet(5, 140)}},
			{ExerciseID: squat.ID, Sets: []models.Set{models.CardioSet(100, 30)}},
		},
	}

	_, err := db.SaveWorkout(ctx, draft)
	require.ErrorIs(t, err, ErrValidation)

	workouts, err := db.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	records, err := db.GetPersonalRecords(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records, "records from the failed save are rolled back")

	draft.Exercises[1].ExerciseID = 9999
	draft.Exercises[1].Sets = []models.Set{models.LoadSet(1, 1)}
	_, err = db.SaveWorkout(ctx, draft)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveWorkoutRequiresSets(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.SaveWorkout(context.Background(), &models.WorkoutDraft{
		Name:      "Empty",
		Date:      testToday(),
		Exercises: []models.DraftExercise{{ExerciseID: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
