// ABOUTME: Default exercise catalog seeded into a fresh database.
// ABOUTME: Runs once; seeded rows are never updated by later releases.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/sirupsen/logrus"
)

type defaultExercise struct {
	name      string
	category  models.Category
	groups    string
	equipment string
}

var defaultExercises = []defaultExercise{
	{"Bench Press", models.CategoryStrength, "Chest,Shoulders,Triceps", "Barbell"},
	{"Incline Bench Press", models.CategoryStrength, "Chest,Shoulders,Triceps", "Barbell"},
	{"Dumbbell Press", models.CategoryStrength, "Chest,Shoulders,Triceps", "Dumbbells"},
	{"Push-ups", models.CategoryStrength, "Chest,Shoulders,Triceps", "Bodyweight"},
	{"Pull-ups", models.CategoryStrength, "Back,Biceps", "Pull-up Bar"},
	{"Deadlift", models.CategoryStrength, "Back,Glutes,Hamstrings", "Barbell"},
	{"Bent-over Row", models.CategoryStrength, "Back,Biceps", "Barbell"},
	{"Lat Pulldown", models.CategoryStrength, "Back,Biceps", "Cable Machine"},
	{"Squat", models.CategoryStrength, "Quadriceps,Glutes,Hamstrings", "Barbell"},
	{"Leg Press", models.CategoryStrength, "Quadriceps,Glutes", "Machine"},
	{"Lunges", models.CategoryStrength, "Quadriceps,Glutes,Hamstrings", "Dumbbells"},
	{"Calf Raises", models.CategoryStrength, "Calves", "Dumbbells"},
	{"Overhead Press", models.CategoryStrength, "Shoulders,Triceps", "Barbell"},
	{"Lateral Raises", models.CategoryStrength, "Shoulders", "Dumbbells"},
	{"Rear Delt Flyes", models.CategoryStrength, "Shoulders", "Dumbbells"},
	{"Bicep Curls", models.CategoryStrength, "Biceps", "Dumbbells"},
	{"Tricep Dips", models.CategoryStrength, "Triceps", "Bodyweight"},
	{"Hammer Curls", models.CategoryStrength, "Biceps,Forearms", "Dumbbells"},
	{"Running", models.CategoryCardio, "Full Body", "None"},
	{"Cycling", models.CategoryCardio, "Legs,Glutes", "Bike"},
	{"Rowing", models.CategoryCardio, "Full Body", "Rowing Machine"},
}

// DefaultExerciseCount is the size of the seeded catalog.
func DefaultExerciseCount() int {
	return len(defaultExercises)
}

// seedDefaults inserts the default catalog when no built-in exercise exists.
func (d *DB) seedDefaults(ctx context.Context, conn *sql.DB) error {
	var builtIn int
	if err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM exercises WHERE is_custom = 0").Scan(&builtIn); err != nil {
		return fmt.Errorf("count built-in exercises: %w", err)
	}
	if builtIn > 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}

	createdAt := formatTime(d.stamp())
	for _, e := range defaultExercises {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercises (name, category, muscle_groups, equipment, is_custom, created_at)
			VALUES (?, ?, ?, ?, 0, ?)
		`, e.name, string(e.category), e.groups, e.equipment, createdAt)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed %s: %w", e.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	logrus.WithField("count", len(defaultExercises)).Info("seeded default exercises")
	return nil
}
