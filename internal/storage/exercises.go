// ABOUTME: Exercise CRUD operations for SQLite storage.
// ABOUTME: Built-in exercises are read-only; referenced custom ones cannot be deleted.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/sirupsen/logrus"
)

// ExerciseFilter narrows ListExercises. Zero fields match everything.
type ExerciseFilter struct {
	// Search matches name or muscle groups, case-insensitively.
	Search   string
	Category models.Category
}

const exerciseColumns = `id, name, category, muscle_groups, equipment, instructions, is_custom, created_at`

// CreateExercise stores a new exercise and sets its ID and CreatedAt.
func (d *DB) CreateExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	conn, err := d.conn()
	if err != nil {
		return 0, err
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	e.CreatedAt = d.stamp()
	id, err := insertExercise(ctx, conn, e)
	if err != nil {
		return 0, fmt.Errorf("create exercise: %w", err)
	}
	e.ID = id
	return id, nil
}

func insertExercise(ctx context.Context, q querier, e *models.Exercise) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO exercises (name, category, muscle_groups, equipment, instructions, is_custom, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.Name,
		string(e.Category),
		e.MuscleGroups,
		e.Equipment,
		e.Instructions,
		e.IsCustom,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetExercise retrieves an exercise by ID.
func (d *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return getExercise(ctx, conn, id)
}

func getExercise(ctx context.Context, q querier, id int64) (*models.Exercise, error) {
	row := q.QueryRowContext(ctx, "SELECT "+exerciseColumns+" FROM exercises WHERE id = ?", id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("exercise", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

// ListExercises returns exercises matching filter, built-ins first, then by name.
func (d *DB) ListExercises(ctx context.Context, filter ExerciseFilter) ([]*models.Exercise, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + exerciseColumns + " FROM exercises"
	var args []any
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, string(filter.Category))
	}
	query += " ORDER BY is_custom ASC, name ASC"

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	// SQLite's LOWER only folds ASCII, so search is matched here.
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.MuscleGroups), search) {
			continue
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// UpdateExercise applies patch to a custom exercise. Built-in and unknown
// exercises are left untouched without error. The category of an exercise
// used by any workout entry is fixed; changing it returns a *ConstraintError.
func (d *DB) UpdateExercise(ctx context.Context, id int64, patch models.ExercisePatch) error {
	if _, err := d.conn(); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	return d.withTx(ctx, func(tx *sql.Tx) error {
		var current models.Category
		var isCustom bool
		err := tx.QueryRowContext(ctx, "SELECT category, is_custom FROM exercises WHERE id = ?", id).Scan(&current, &isCustom)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !isCustom) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("update exercise: %w", err)
		}

		if next, ok := patch.Category.Get(); ok && next != current {
			var entries int
			err := tx.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM workout_exercises WHERE exercise_id = ?", id).Scan(&entries)
			if err != nil {
				return fmt.Errorf("count exercise entries: %w", err)
			}
			if entries > 0 {
				return &ConstraintError{
					Entity: "exercise",
					ID:     id,
					Reason: fmt.Sprintf("category cannot change from %s to %s while %d workout entries use it", current, next, entries),
				}
			}
		}

		var a assignments
		setOpt(&a, "name", patch.Name)
		setOpt(&a, "category", patch.Category)
		setOpt(&a, "muscle_groups", patch.MuscleGroups)
		setOpt(&a, "equipment", patch.Equipment)
		setOpt(&a, "instructions", patch.Instructions)

		if err := a.exec(ctx, tx, "exercises", id, "is_custom = 1"); err != nil {
			return fmt.Errorf("update exercise: %w", err)
		}
		return nil
	})
}

// DeleteExercise removes a custom exercise. Deleting a built-in or unknown
// exercise is a no-op. A custom exercise still used by a workout, template
// or personal record is refused with a *ConstraintError.
func (d *DB) DeleteExercise(ctx context.Context, id int64) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		var isCustom bool
		err := tx.QueryRowContext(ctx, "SELECT is_custom FROM exercises WHERE id = ?", id).Scan(&isCustom)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		if !isCustom {
			logrus.WithField("exercise_id", id).Debug("ignoring delete of built-in exercise")
			return nil
		}

		var refs int
		err = tx.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM workout_exercises WHERE exercise_id = ?) +
				(SELECT COUNT(*) FROM template_exercises WHERE exercise_id = ?) +
				(SELECT COUNT(*) FROM personal_records WHERE exercise_id = ?)
		`, id, id, id).Scan(&refs)
		if err != nil {
			return fmt.Errorf("count exercise references: %w", err)
		}
		if refs > 0 {
			return &ConstraintError{
				Entity: "exercise",
				ID:     id,
				Reason: fmt.Sprintf("still referenced by %d workout, template or record entries", refs),
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE id = ? AND is_custom = 1", id); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		return nil
	})
}

// exerciseCategory returns the category of an exercise, or ErrNotFound.
func exerciseCategory(ctx context.Context, q querier, id int64) (models.Category, error) {
	var category models.Category
	err := q.QueryRowContext(ctx, "SELECT category FROM exercises WHERE id = ?", id).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("exercise", id)
	}
	if err != nil {
		return "", fmt.Errorf("get exercise category: %w", err)
	}
	return category, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(s scanner) (*models.Exercise, error) {
	var e models.Exercise
	var createdAt string
	err := s.Scan(
		&e.ID,
		&e.Name,
		&e.Category,
		&e.MuscleGroups,
		&e.Equipment,
		&e.Instructions,
		&e.IsCustom,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}
