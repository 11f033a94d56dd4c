// ABOUTME: Workout and WorkoutExercise CRUD operations for SQLite storage.
// ABOUTME: Deleting a workout cascades to its exercise instances and sets.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

const workoutColumns = `id, name, date, duration, notes, created_at`

// CreateWorkout stores a new workout and sets its ID and CreatedAt.
func (d *DB) CreateWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	conn, err := d.conn()
	if err != nil {
		return 0, err
	}
	if err := w.Validate(); err != nil {
		return 0, err
	}

	w.CreatedAt = d.stamp()
	id, err := insertWorkout(ctx, conn, w)
	if err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	w.ID = id
	return id, nil
}

func insertWorkout(ctx context.Context, q querier, w *models.Workout) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO workouts (name, date, duration, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		w.Name,
		w.Date,
		w.Duration,
		w.Notes,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetWorkout retrieves a workout by ID, without its exercises.
func (d *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return getWorkout(ctx, conn, id)
}

func getWorkout(ctx context.Context, q querier, id int64) (*models.Workout, error) {
	row := q.QueryRowContext(ctx, "SELECT "+workoutColumns+" FROM workouts WHERE id = ?", id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("workout", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// ListWorkouts returns workouts, most recent first. A limit of zero or less
// returns every workout after offset.
func (d *DB) ListWorkouts(ctx context.Context, limit, offset int) ([]*models.Workout, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// UpdateWorkout applies patch to a workout. Unknown IDs are a no-op.
func (d *DB) UpdateWorkout(ctx context.Context, id int64, patch models.WorkoutPatch) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	var a assignments
	setOpt(&a, "name", patch.Name)
	setOpt(&a, "date", patch.Date)
	setOpt(&a, "duration", patch.Duration)
	setOpt(&a, "notes", patch.Notes)

	if err := a.exec(ctx, conn, "workouts", id, ""); err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout with its exercise instances and sets.
// Personal records it produced are kept with their workout cleared.
func (d *DB) DeleteWorkout(ctx context.Context, id int64) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}
	// CASCADE is enabled, so deleting the workout deletes its children
	if _, err := conn.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// AddExerciseToWorkout places an exercise in a workout at orderIndex and
// returns the new workout exercise ID.
func (d *DB) AddExerciseToWorkout(ctx context.Context, workoutID, exerciseID int64, orderIndex int) (int64, error) {
	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if orderIndex < 0 {
			return &ValidationError{Field: "order_index", Message: "must not be negative"}
		}
		if err := requireRow(ctx, tx, "workouts", "workout", workoutID); err != nil {
			return err
		}
		if _, err := exerciseCategory(ctx, tx, exerciseID); err != nil {
			return err
		}

		var err error
		id, err = insertWorkoutExercise(ctx, tx, &models.WorkoutExercise{
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			OrderIndex: orderIndex,
		})
		if err != nil {
			return fmt.Errorf("add exercise to workout: %w", err)
		}
		return nil
	})
	return id, err
}

func insertWorkoutExercise(ctx context.Context, q querier, we *models.WorkoutExercise) (int64, error) {
	result, err := q.ExecContext(ctx,
		"INSERT INTO workout_exercises (workout_id, exercise_id, order_index) VALUES (?, ?, ?)",
		we.WorkoutID, we.ExerciseID, we.OrderIndex)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RemoveExerciseFromWorkout deletes an exercise instance and its sets.
func (d *DB) RemoveExerciseFromWorkout(ctx context.Context, workoutExerciseID int64) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "DELETE FROM workout_exercises WHERE id = ?", workoutExerciseID); err != nil {
		return fmt.Errorf("remove exercise from workout: %w", err)
	}
	return nil
}

// GetWorkoutExercise retrieves one exercise instance of a workout.
func (d *DB) GetWorkoutExercise(ctx context.Context, id int64) (*models.WorkoutExercise, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	var we models.WorkoutExercise
	err = conn.QueryRowContext(ctx,
		"SELECT id, workout_id, exercise_id, order_index FROM workout_exercises WHERE id = ?", id,
	).Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("workout exercise", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout exercise: %w", err)
	}
	return &we, nil
}

// GetWorkoutWithExercises retrieves a workout with its exercises ordered by
// order_index and each exercise's sets ordered by set_number.
func (d *DB) GetWorkoutWithExercises(ctx context.Context, id int64) (*models.WorkoutWithExercises, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	w, err := getWorkout(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	result := &models.WorkoutWithExercises{Workout: *w, Exercises: []models.WorkoutExerciseDetail{}}

	rows, err := conn.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.exercise_id, we.order_index,
			e.id, e.name, e.category, e.muscle_groups, e.equipment, e.instructions, e.is_custom, e.created_at
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ?
		ORDER BY we.order_index ASC, we.id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}

	index := make(map[int64]int)
	for rows.Next() {
		var detail models.WorkoutExerciseDetail
		var createdAt string
		err := rows.Scan(
			&detail.ID, &detail.WorkoutID, &detail.ExerciseID, &detail.OrderIndex,
			&detail.Exercise.ID, &detail.Exercise.Name, &detail.Exercise.Category,
			&detail.Exercise.MuscleGroups, &detail.Exercise.Equipment, &detail.Exercise.Instructions,
			&detail.Exercise.IsCustom, &createdAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		detail.Exercise.CreatedAt = parseTime(createdAt)
		detail.Sets = []models.Set{}
		index[detail.ID] = len(result.Exercises)
		result.Exercises = append(result.Exercises, detail)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	rows.Close()

	if len(result.Exercises) == 0 {
		return result, nil
	}

	sets, err := listWorkoutSets(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		if i, ok := index[s.WorkoutExerciseID]; ok {
			result.Exercises[i].Sets = append(result.Exercises[i].Sets, s)
		}
	}

	return result, nil
}

// requireRow returns ErrNotFound unless table has a row with id.
func requireRow(ctx context.Context, q querier, table, entity string, id int64) error {
	var exists bool
	err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check %s: %w", entity, err)
	}
	if !exists {
		return notFound(entity, id)
	}
	return nil
}

func scanWorkout(s scanner) (*models.Workout, error) {
	var w models.Workout
	var createdAt string
	err := s.Scan(
		&w.ID,
		&w.Name,
		&w.Date,
		&w.Duration,
		&w.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	w.CreatedAt = parseTime(createdAt)
	return &w, nil
}
