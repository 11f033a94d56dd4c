// ABOUTME: Tests for snapshot export, import with ID remapping, and Markdown output.
// ABOUTME: A rejected import must leave the target database untouched.
package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// populate fills db with one custom exercise, a saved workout using it and a
// built-in, and a template.
func populate(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	sled := models.NewExercise("Sled Push", models.CategoryStrength, "Quadriceps", "Glutes").WithEquipment("Sled")
	_, err := db.CreateExercise(ctx, sled)
	require.NoError(t, err)

	_, err = db.SaveWorkout(ctx, &models.WorkoutDraft{
		Name:  "Conditioning",
		Date:  testToday(),
		Notes: stringPtr("hot day"),
		Exercises: []models.DraftExercise{
			{ExerciseID: sled.ID, Sets: []models.Set{models.LoadSet(4, 120), models.LoadSet(4, 140)}},
			{ExerciseID: builtIn(t, db, "Rowing").ID, Sets: []models.Set{models.CardioSet(2000, 480)}},
		},
	})
	require.NoError(t, err)

	tmpl := models.NewTemplate("Engine").WithDescription("sled and row")
	_, err = db.CreateTemplate(ctx, tmpl)
	require.NoError(t, err)
	_, err = db.AddExerciseToTemplate(ctx, &models.TemplateExercise{
		TemplateID: tmpl.ID, ExerciseID: sled.ID, DefaultSets: intPtr(4), DefaultWeight: floatPtr(120),
	})
	require.NoError(t, err)
}

func TestExportSnapshot(t *testing.T) {
	db := setupTestDB(t)
	populate(t, db)

	snap, err := db.ExportSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, "fitlog", snap.Tool)
	_, err = uuid.Parse(snap.SnapshotID)
	assert.NoError(t, err)

	require.Len(t, snap.Exercises, 1, "only custom exercises are exported")
	assert.Equal(t, "Sled Push", snap.Exercises[0].Name)
	assert.Len(t, snap.Workouts, 1)
	assert.Len(t, snap.WorkoutExercises, 2)
	assert.Len(t, snap.Sets, 3)
	assert.Len(t, snap.Templates, 1)
	assert.Len(t, snap.TemplateExercises, 1)
	assert.Len(t, snap.PersonalRecords, 3)
	assert.Equal(t, "hot day", *snap.Workouts[0].Notes)
}

func TestExportJSONShape(t *testing.T) {
	db := setupTestDB(t)
	populate(t, db)

	data, err := db.ExportJSON(context.Background())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{
		"exercises", "workouts", "workout_exercises", "sets",
		"templates", "template_exercises", "personal_records",
	} {
		assert.Contains(t, doc, key)
	}
	assert.Contains(t, string(doc["workouts"]), `"date": "2025-06-18"`)
}

func TestImportIntoEmptyDatabase(t *testing.T) {
	src := setupTestDB(t)
	populate(t, src)
	ctx := context.Background()

	data, err := src.ExportJSON(ctx)
	require.NoError(t, err)

	dst := setupTestDB(t)
	summary, err := dst.ImportJSON(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, &ImportSummary{
		ExercisesCreated:  1,
		Workouts:          1,
		WorkoutExercises:  2,
		Sets:              3,
		Templates:         1,
		TemplateExercises: 1,
		PersonalRecords:   3,
	}, summary)

	workouts, err := dst.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, workouts, 1)

	full, err := dst.GetWorkoutWithExercises(ctx, workouts[0].ID)
	require.NoError(t, err)
	require.Len(t, full.Exercises, 2)
	assert.Equal(t, "Sled Push", full.Exercises[0].Exercise.Name)
	assert.Equal(t, "Rowing", full.Exercises[1].Exercise.Name)
	assert.Equal(t, 140.0, *full.Exercises[0].Sets[1].Weight)

	again, err := dst.ExportSnapshot(ctx)
	require.NoError(t, err)
	before, err := src.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Sets, again.Sets)
	assert.Equal(t, before.Workouts[0].CreatedAt, again.Workouts[0].CreatedAt)
}

func TestImportIntoPopulatedDatabaseRemapsIDs(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	populate(t, src)
	snap, err := src.ExportSnapshot(ctx)
	require.NoError(t, err)

	dst := setupTestDB(t)
	// Occupy the IDs the snapshot uses.
	for i := 0; i < 3; i++ {
		createWorkout(t, dst, testToday().AddDays(-i-1))
	}
	existing := models.NewExercise("Sled Push", models.CategoryStrength, "Legs")
	_, err = dst.CreateExercise(ctx, existing)
	require.NoError(t, err)

	summary, err := dst.ImportSnapshot(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExercisesUpdated, "matching custom exercise is replaced")
	assert.Zero(t, summary.ExercisesCreated)

	updated, err := dst.GetExercise(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quadriceps,Glutes", updated.MuscleGroups)
	assert.Equal(t, "Sled", *updated.Equipment)

	workouts, err := dst.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, workouts, 4)
	imported := workouts[0]
	assert.Equal(t, "Conditioning", imported.Name)
	assert.NotEqual(t, snap.Workouts[0].ID, imported.ID)

	full, err := dst.GetWorkoutWithExercises(ctx, imported.ID)
	require.NoError(t, err)
	require.Len(t, full.Exercises, 2)
	assert.Equal(t, existing.ID, full.Exercises[0].ExerciseID)
	assert.Len(t, full.Exercises[0].Sets, 2)

	records, err := dst.GetPersonalRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, pr := range records {
		require.NotNil(t, pr.WorkoutID)
		assert.Equal(t, imported.ID, *pr.WorkoutID)
	}
}

func TestImportNeverOverwritesBuiltIns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	bench := builtIn(t, db, "Bench Press")

	summary, err := db.ImportSnapshot(ctx, &Snapshot{
		Exercises: []models.Exercise{{
			ID: 500, Name: "Bench Press", Category: models.CategoryStrength,
			MuscleGroups: "Everything", IsCustom: true,
		}},
		Workouts: []models.Workout{{ID: 7, Name: "Imported", Date: testToday()}},
		WorkoutExercises: []models.WorkoutExercise{
			{ID: 70, WorkoutID: 7, ExerciseID: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ExercisesMatched)

	got, err := db.GetExercise(ctx, bench.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chest,Shoulders,Triceps", got.MuscleGroups)
	assert.False(t, got.IsCustom)
	assert.Equal(t, DefaultExerciseCount(), countBuiltIns(t, db))

	workouts, err := db.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	full, err := db.GetWorkoutWithExercises(ctx, workouts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, bench.ID, full.Exercises[0].ExerciseID)
}

func TestImportResolvesBuiltInReferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	rowing := builtIn(t, db, "Rowing")

	_, err := db.ImportSnapshot(ctx, &Snapshot{
		Workouts:         []models.Workout{{ID: 1, Name: "Row", Date: testToday()}},
		WorkoutExercises: []models.WorkoutExercise{{ID: 1, WorkoutID: 1, ExerciseID: rowing.ID}},
		Sets:             []models.Set{{ID: 1, WorkoutExerciseID: 1, SetNumber: 1, Distance: floatPtr(1000)}},
	})
	require.NoError(t, err)

	p, err := db.GetExerciseProgress(ctx, rowing.ID, 7)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestRejectedImportWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	squat := builtIn(t, db, "Squat")

	_, err := db.ImportSnapshot(ctx, &Snapshot{
		Exercises: []models.Exercise{{ID: 900, Name: "Ghost Lift", Category: models.CategoryStrength, MuscleGroups: "Back"}},
		Workouts:  []models.Workout{{ID: 1, Name: "Good", Date: testToday()}},
		WorkoutExercises: []models.WorkoutExercise{
			{ID: 1, WorkoutID: 1, ExerciseID: squat.ID},
			{ID: 2, WorkoutID: 1, ExerciseID: 4242},
			{ID: 3, WorkoutID: 99, ExerciseID: squat.ID},
		},
		Sets: []models.Set{
			{ID: 1, WorkoutExerciseID: 1, SetNumber: 1, Distance: floatPtr(10)},
			{ID: 2, WorkoutExerciseID: 77, SetNumber: 1},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	for _, want := range []string{"unknown exercise 4242", "unknown workout 99", "unknown workout exercise 77", "set 1"} {
		assert.Contains(t, err.Error(), want)
	}

	workouts, err := db.ListWorkouts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	ghosts, err := db.ListExercises(ctx, ExerciseFilter{Search: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, ghosts)
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.ImportSnapshot(context.Background(), &Snapshot{Version: "9.0"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = db.ImportSnapshot(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = db.ImportJSON(context.Background(), []byte("{not json"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	populate(t, src)

	data, err := src.ExportYAML(ctx)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "personal_records")

	dst, err := Open(ctx, filepath.Join(t.TempDir(), "copy.db"), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	defer dst.Close()

	summary, err := dst.ImportYAML(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Sets)

	stats, err := dst.GetWorkoutStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4*120.0+4*140, stats.TotalVolume)
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	populate(t, db)
	ctx := context.Background()
	createWorkout(t, db, testToday().AddDays(-30))

	md, err := db.ExportMarkdown(ctx, models.Date{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Workout Log - 2025-06-18"))
	assert.Contains(t, md, "## 2025-06-18 - Conditioning")
	assert.Contains(t, md, "### Sled Push")
	assert.Contains(t, md, "| 2 | 4 × 140 |")
	assert.Contains(t, md, "2000 m in 480 s")
	assert.Contains(t, md, "## Personal Records")
	assert.Contains(t, md, "2025-05-19")

	recent, err := db.ExportMarkdown(ctx, testToday().AddDays(-7))
	require.NoError(t, err)
	assert.NotContains(t, recent, "## 2025-05-19")
}

func TestFormatSet(t *testing.T) {
	assert.Equal(t, "5 × 102.5", FormatSet(models.LoadSet(5, 102.5)))
	assert.Equal(t, "12 reps", FormatSet(models.Set{Reps: intPtr(12)}))
	assert.Equal(t, "400 m in 95 s", FormatSet(models.CardioSet(400, 95)))
	assert.Equal(t, "60 s", FormatSet(models.Set{Duration: intPtr(60)}))
	assert.Equal(t, "-", FormatSet(models.Set{}))
}
