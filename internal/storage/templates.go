// ABOUTME: Template and TemplateExercise CRUD operations for SQLite storage.
// ABOUTME: Deleting a template cascades to its template exercises.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

const templateColumns = `id, name, description, created_at`

// CreateTemplate stores a new template and sets its ID and CreatedAt.
func (d *DB) CreateTemplate(ctx context.Context, t *models.Template) (int64, error) {
	conn, err := d.conn()
	if err != nil {
		return 0, err
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}

	t.CreatedAt = d.stamp()
	id, err := insertTemplate(ctx, conn, t)
	if err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	t.ID = id
	return id, nil
}

func insertTemplate(ctx context.Context, q querier, t *models.Template) (int64, error) {
	result, err := q.ExecContext(ctx,
		"INSERT INTO templates (name, description, created_at) VALUES (?, ?, ?)",
		t.Name, t.Description, formatTime(t.CreatedAt))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetTemplate retrieves a template by ID, without its exercises.
func (d *DB) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return getTemplate(ctx, conn, id)
}

func getTemplate(ctx context.Context, q querier, id int64) (*models.Template, error) {
	row := q.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM templates WHERE id = ?", id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("template", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// ListTemplates returns all templates ordered by name.
func (d *DB) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, "SELECT "+templateColumns+" FROM templates ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateTemplate applies patch to a template. Unknown IDs are a no-op.
func (d *DB) UpdateTemplate(ctx context.Context, id int64, patch models.TemplatePatch) error {
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
	setOpt(&a, "description", patch.Description)

	if err := a.exec(ctx, conn, "templates", id, ""); err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a template and its template exercises.
func (d *DB) DeleteTemplate(ctx context.Context, id int64) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// AddExerciseToTemplate stores te and sets its ID.
func (d *DB) AddExerciseToTemplate(ctx context.Context, te *models.TemplateExercise) (int64, error) {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if err := te.Validate(); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, "templates", "template", te.TemplateID); err != nil {
			return err
		}
		if _, err := exerciseCategory(ctx, tx, te.ExerciseID); err != nil {
			return err
		}

		id, err := insertTemplateExercise(ctx, tx, te)
		if err != nil {
			return fmt.Errorf("add exercise to template: %w", err)
		}
		te.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return te.ID, nil
}

// CreateTemplateWithExercises stores t and its exercises in one transaction,
// assigning order from the slice position. Nothing is stored if any entry is
// invalid or names an unknown exercise.
func (d *DB) CreateTemplateWithExercises(ctx context.Context, t *models.Template, exercises []*models.TemplateExercise) (int64, error) {
	var templateID int64
	entryIDs := make([]int64, len(exercises))

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if err := t.Validate(); err != nil {
			return err
		}

		t.CreatedAt = d.stamp()
		id, err := insertTemplate(ctx, tx, t)
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}
		templateID = id

		for i, te := range exercises {
			te.TemplateID = id
			te.OrderIndex = i
			if err := te.Validate(); err != nil {
				return err
			}
			if _, err := exerciseCategory(ctx, tx, te.ExerciseID); err != nil {
				return err
			}
			if entryIDs[i], err = insertTemplateExercise(ctx, tx, te); err != nil {
				return fmt.Errorf("add exercise to template: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	t.ID = templateID
	for i, te := range exercises {
		te.ID = entryIDs[i]
	}
	return templateID, nil
}

func insertTemplateExercise(ctx context.Context, q querier, te *models.TemplateExercise) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO template_exercises (template_id, exercise_id, order_index, default_sets, default_reps, default_weight)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		te.TemplateID,
		te.ExerciseID,
		te.OrderIndex,
		te.DefaultSets,
		te.DefaultReps,
		te.DefaultWeight,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetTemplateWithExercises retrieves a template with its exercises ordered
// by order_index.
func (d *DB) GetTemplateWithExercises(ctx context.Context, id int64) (*models.TemplateWithExercises, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	return getTemplateWithExercises(ctx, conn, id)
}

func getTemplateWithExercises(ctx context.Context, q querier, id int64) (*models.TemplateWithExercises, error) {
	t, err := getTemplate(ctx, q, id)
	if err != nil {
		return nil, err
	}
	result := &models.TemplateWithExercises{Template: *t, Exercises: []models.TemplateExerciseDetail{}}

	rows, err := q.QueryContext(ctx, `
		SELECT te.id, te.template_id, te.exercise_id, te.order_index,
			te.default_sets, te.default_reps, te.default_weight,
			e.id, e.name, e.category, e.muscle_groups, e.equipment, e.instructions, e.is_custom, e.created_at
		FROM template_exercises te
		JOIN exercises e ON e.id = te.exercise_id
		WHERE te.template_id = ?
		ORDER BY te.order_index ASC, te.id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var detail models.TemplateExerciseDetail
		var createdAt string
		err := rows.Scan(
			&detail.ID, &detail.TemplateID, &detail.ExerciseID, &detail.OrderIndex,
			&detail.DefaultSets, &detail.DefaultReps, &detail.DefaultWeight,
			&detail.Exercise.ID, &detail.Exercise.Name, &detail.Exercise.Category,
			&detail.Exercise.MuscleGroups, &detail.Exercise.Equipment, &detail.Exercise.Instructions,
			&detail.Exercise.IsCustom, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan template exercise: %w", err)
		}
		detail.Exercise.CreatedAt = parseTime(createdAt)
		result.Exercises = append(result.Exercises, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}
	return result, nil
}

func scanTemplate(s scanner) (*models.Template, error) {
	var t models.Template
	var createdAt string
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &createdAt); err != nil {
		return nil, err
	}
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
