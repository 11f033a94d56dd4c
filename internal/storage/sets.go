// ABOUTME: Set CRUD operations for SQLite storage.
// ABOUTME: Sets are validated against their exercise category and kept contiguously numbered.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

const setColumns = `id, workout_exercise_id, set_number, reps, weight, distance, duration, rest_time, notes`

// AddSet appends a set to its workout exercise. The set number is assigned
// as one past the current last set; ID and SetNumber are written back to s.
func (d *DB) AddSet(ctx context.Context, s *models.Set) (int64, error) {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		category, err := setCategory(ctx, tx, s.WorkoutExerciseID)
		if err != nil {
			return err
		}
		if err := s.ValidateFor(category); err != nil {
			return err
		}

		var last int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(set_number), 0) FROM sets WHERE workout_exercise_id = ?",
			s.WorkoutExerciseID).Scan(&last); err != nil {
			return fmt.Errorf("next set number: %w", err)
		}
		s.SetNumber = last + 1

		id, err := insertSet(ctx, tx, s)
		if err != nil {
			return fmt.Errorf("add set: %w", err)
		}
		s.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func insertSet(ctx context.Context, q querier, s *models.Set) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO sets (workout_exercise_id, set_number, reps, weight, distance, duration, rest_time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.WorkoutExerciseID,
		s.SetNumber,
		s.Reps,
		s.Weight,
		s.Distance,
		s.Duration,
		s.RestTime,
		s.Notes,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetSet retrieves a set by ID.
func (d *DB) GetSet(ctx context.Context, id int64) (*models.Set, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return getSet(ctx, conn, id)
}

func getSet(ctx context.Context, q querier, id int64) (*models.Set, error) {
	row := q.QueryRowContext(ctx, "SELECT "+setColumns+" FROM sets WHERE id = ?", id)
	s, err := scanSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("set", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return s, nil
}

// UpdateSet applies patch to a set after checking the result still fits the
// exercise category. Unknown IDs are a no-op.
func (d *DB) UpdateSet(ctx context.Context, id int64, patch models.SetPatch) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if patch.IsEmpty() {
			return nil
		}

		current, err := getSet(ctx, tx, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		category, err := setCategory(ctx, tx, current.WorkoutExerciseID)
		if err != nil {
			return err
		}
		if err := patch.Apply(*current).ValidateFor(category); err != nil {
			return err
		}

		var a assignments
		setOpt(&a, "reps", patch.Reps)
		setOpt(&a, "weight", patch.Weight)
		setOpt(&a, "distance", patch.Distance)
		setOpt(&a, "duration", patch.Duration)
		setOpt(&a, "rest_time", patch.RestTime)
		setOpt(&a, "notes", patch.Notes)

		if err := a.exec(ctx, tx, "sets", id, ""); err != nil {
			return fmt.Errorf("update set: %w", err)
		}
		return nil
	})
}

// DeleteSet removes a set and renumbers the later sets of the same
// exercise instance so numbering stays 1..n. Unknown IDs are a no-op.
func (d *DB) DeleteSet(ctx context.Context, id int64) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		var parent int64
		var number int
		err := tx.QueryRowContext(ctx,
			"SELECT workout_exercise_id, set_number FROM sets WHERE id = ?", id).Scan(&parent, &number)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete set: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM sets WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete set: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE sets SET set_number = set_number - 1
			WHERE workout_exercise_id = ? AND set_number > ?
		`, parent, number); err != nil {
			return fmt.Errorf("renumber sets: %w", err)
		}
		return nil
	})
}

// ListSets returns the sets of one workout exercise ordered by set number.
func (d *DB) ListSets(ctx context.Context, workoutExerciseID int64) ([]models.Set, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx,
		"SELECT "+setColumns+" FROM sets WHERE workout_exercise_id = ? ORDER BY set_number ASC",
		workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()
	return scanSets(rows)
}

// listWorkoutSets returns every set of a workout in one query, grouped by
// exercise instance and ordered by set number.
func listWorkoutSets(ctx context.Context, q querier, workoutID int64) ([]models.Set, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT s.id, s.workout_exercise_id, s.set_number, s.reps, s.weight, s.distance, s.duration, s.rest_time, s.notes
		FROM sets s
		JOIN workout_exercises we ON we.id = s.workout_exercise_id
		WHERE we.workout_id = ?
		ORDER BY s.workout_exercise_id ASC, s.set_number ASC
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list workout sets: %w", err)
	}
	defer rows.Close()
	return scanSets(rows)
}

// setCategory returns the category of the exercise behind a workout
// exercise, or ErrNotFound when the workout exercise does not exist.
func setCategory(ctx context.Context, q querier, workoutExerciseID int64) (models.Category, error) {
	var category models.Category
	err := q.QueryRowContext(ctx, `
		SELECT e.category
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.id = ?
	`, workoutExerciseID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("workout exercise", workoutExerciseID)
	}
	if err != nil {
		return "", fmt.Errorf("get set category: %w", err)
	}
	return category, nil
}

func scanSet(s scanner) (*models.Set, error) {
	var set models.Set
	err := s.Scan(
		&set.ID,
		&set.WorkoutExerciseID,
		&set.SetNumber,
		&set.Reps,
		&set.Weight,
		&set.Distance,
		&set.Duration,
		&set.RestTime,
		&set.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func scanSets(rows *sql.Rows) ([]models.Set, error) {
	var sets []models.Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}
