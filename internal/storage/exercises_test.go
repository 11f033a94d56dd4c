// ABOUTME: Tests for exercise CRUD, filtering and deletion policy.
// ABOUTME: Built-ins stay intact; referenced custom exercises cannot be deleted.
package storage

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := models.NewExercise("Landmine Press", models.CategoryStrength, "Shoulders", "Chest").
		WithEquipment("Barbell").
		WithInstructions(gofakeit.Sentence(8))

	id, err := db.CreateExercise(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)

	got, err := db.GetExercise(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, e.Name, got.Name)
	assert.Equal(t, e.Category, got.Category)
	assert.Equal(t, e.MuscleGroups, got.MuscleGroups)
	assert.Equal(t, e.Equipment, got.Equipment)
	assert.Equal(t, e.Instructions, got.Instructions)
	assert.True(t, got.IsCustom)
	assert.True(t, got.CreatedAt.Equal(e.CreatedAt))
}

func TestCreateExerciseKeepsBuiltInFlag(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := models.NewExercise("Farmer Carry", models.CategorySports, "Forearms")
	e.IsCustom = false
	id, err := db.CreateExercise(ctx, e)
	require.NoError(t, err)

	got, err := db.GetExercise(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.IsCustom)
	assert.Nil(t, got.Equipment)
}

func TestCreateExerciseValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateExercise(ctx, models.NewExercise("", models.CategoryStrength, "Chest"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = db.CreateExercise(ctx, models.NewExercise("Plank", models.CategoryFlexibility))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "muscle_groups", verr.Field)
}

func TestGetExerciseNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetExercise(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListExercisesOrderAndFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateExercise(ctx, models.NewExercise("Arnold Press", models.CategoryStrength, "Shoulders"))
	require.NoError(t, err)

	all, err := db.ListExercises(ctx, ExerciseFilter{})
	require.NoError(t, err)
	require.Len(t, all, DefaultExerciseCount()+1)
	assert.Equal(t, "Arnold Press", all[len(all)-1].Name, "custom exercises sort after built-ins")
	assert.Equal(t, "Bench Press", all[0].Name)

	byName, err := db.ListExercises(ctx, ExerciseFilter{Search: "PRESS"})
	require.NoError(t, err)
	var names []string
	for _, e := range byName {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"Bench Press", "Dumbbell Press", "Incline Bench Press", "Leg Press", "Overhead Press", "Arnold Press",
	}, names)

	byMuscle, err := db.ListExercises(ctx, ExerciseFilter{Search: "calves"})
	require.NoError(t, err)
	require.Len(t, byMuscle, 1)
	assert.Equal(t, "Calf Raises", byMuscle[0].Name)

	cardio, err := db.ListExercises(ctx, ExerciseFilter{Category: models.CategoryCardio})
	require.NoError(t, err)
	assert.Len(t, cardio, 3)

	both, err := db.ListExercises(ctx, ExerciseFilter{Search: "full body", Category: models.CategoryCardio})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := db.ListExercises(ctx, ExerciseFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Empty(t, none, "wildcards in the search are literal")
}

func TestUpdateExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := models.NewExercise("Cable Fly", models.CategoryStrength, "Chest").WithEquipment("Cable")
	_, err := db.CreateExercise(ctx, e)
	require.NoError(t, err)

	require.NoError(t, db.UpdateExercise(ctx, e.ID, models.ExercisePatch{
		Name:      models.Some("Low Cable Fly"),
		Equipment: models.Null[string](),
	}))

	got, err := db.GetExercise(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Low Cable Fly", got.Name)
	assert.Nil(t, got.Equipment)
	assert.Equal(t, "Chest", got.MuscleGroups, "absent fields are untouched")
	assert.True(t, got.CreatedAt.Equal(e.CreatedAt))

	require.NoError(t, db.UpdateExercise(ctx, e.ID, models.ExercisePatch{}), "empty patch is a no-op")
	require.NoError(t, db.UpdateExercise(ctx, 9999, models.ExercisePatch{Name: models.Some("Ghost")}))

	err = db.UpdateExercise(ctx, e.ID, models.ExercisePatch{Name: models.Some("  ")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateExerciseCategoryOnceLogged(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	e := createExercise(t, db, models.CategoryStrength)
	w := createWorkout(t, db, testToday())
	weID := addExercise(t, db, w.ID, e.ID, 0)
	set := models.LoadSet(5, 100)
	set.WorkoutExerciseID = weID
	setID, err := db.AddSet(ctx, &set)
	require.NoError(t, err)

	err = db.UpdateExercise(ctx, e.ID, models.ExercisePatch{
		Name:     models.Some("Renamed"),
		Category: models.Some(models.CategoryCardio),
	})
	require.ErrorIs(t, err, ErrConstraint)

	got, err := db.GetExercise(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryStrength, got.Category)
	assert.Equal(t, e.Name, got.Name, "a refused patch changes nothing")

	require.NoError(t, db.UpdateSet(ctx, setID, models.SetPatch{Notes: models.Some("felt good")}),
		"logged sets still fit their exercise")

	require.NoError(t, db.UpdateExercise(ctx, e.ID, models.ExercisePatch{
		Name:     models.Some("Renamed"),
		Category: models.Some(models.CategoryStrength),
	}), "keeping the same category is allowed")

	unused := createExercise(t, db, models.CategoryStrength)
	require.NoError(t, db.UpdateExercise(ctx, unused.ID, models.ExercisePatch{Category: models.Some(models.CategoryCardio)}))
	got, err = db.GetExercise(ctx, unused.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCardio, got.Category)

	require.NoError(t, db.DeleteWorkout(ctx, w.ID))
	require.NoError(t, db.UpdateExercise(ctx, e.ID, models.ExercisePatch{Category: models.Some(models.CategoryFlexibility)}))
}

func TestListExercisesSearchFoldsUnicode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateExercise(ctx, models.NewExercise("Élévation latérale", models.CategoryStrength, "Épaules"))
	require.NoError(t, err)

	for _, search := range []string{"élévation", "ÉLÉVATION", "LATÉRALE", "épaules"} {
		hits, err := db.ListExercises(ctx, ExerciseFilter{Search: search})
		require.NoError(t, err)
		require.Len(t, hits, 1, search)
		assert.Equal(t, "Élévation latérale", hits[0].Name)
	}
}

func TestUpdateBuiltInExerciseIsIgnored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	squat := builtIn(t, db, "Squat")

	require.NoError(t, db.UpdateExercise(ctx, squat.ID, models.ExercisePatch{Name: models.Some("Goblet Squat")}))

	w := createWorkout(t, db, testToday())
	addExercise(t, db, w.ID, squat.ID, 0)
	require.NoError(t, db.UpdateExercise(ctx, squat.ID, models.ExercisePatch{Category: models.Some(models.CategoryCardio)}),
		"built-ins stay a silent no-op even when logged")

	got, err := db.GetExercise(ctx, squat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squat", got.Name)
	assert.Equal(t, models.CategoryStrength, got.Category)
}

func TestDeleteBuiltInExerciseIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	deadlift := builtIn(t, db, "Deadlift")

	require.NoError(t, db.DeleteExercise(ctx, deadlift.ID))

	_, err := db.GetExercise(ctx, deadlift.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultExerciseCount(), countBuiltIns(t, db))
}

func TestDeleteCustomExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	e := createExercise(t, db, models.CategoryFlexibility)

	require.NoError(t, db.DeleteExercise(ctx, e.ID))
	_, err := db.GetExercise(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.DeleteExercise(ctx, e.ID), "deleting twice is a no-op")
}

func TestDeleteReferencedExerciseIsRefused(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	inWorkout := createExercise(t, db, models.CategoryStrength)
	w := createWorkout(t, db, testToday())
	addExercise(t, db, w.ID, inWorkout.ID, 0)

	inTemplate := createExercise(t, db, models.CategoryStrength)
	tmpl := models.NewTemplate("Push")
	_, err := db.CreateTemplate(ctx, tmpl)
	require.NoError(t, err)
	_, err = db.AddExerciseToTemplate(ctx, &models.TemplateExercise{TemplateID: tmpl.ID, ExerciseID: inTemplate.ID})
	require.NoError(t, err)

	for _, e := range []*models.Exercise{inWorkout, inTemplate} {
		err := db.DeleteExercise(ctx, e.ID)
		require.ErrorIs(t, err, ErrConstraint)

		var cerr *ConstraintError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, e.ID, cerr.ID)

		_, err = db.GetExercise(ctx, e.ID)
		assert.NoError(t, err, "the exercise is kept")
	}

	// Once the workout is gone the exercise is free again.
	require.NoError(t, db.DeleteWorkout(ctx, w.ID))
	require.NoError(t, db.DeleteExercise(ctx, inWorkout.ID))
}
