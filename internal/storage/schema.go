// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines exercises, workouts, sets, templates and personal_records.
package storage

import (
	"context"
	"database/sql"
)

// baseSchema is the version 1 layout. Every statement is idempotent so it
// can be applied to databases created before versioning existed.
const baseSchema = `
	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('Strength', 'Cardio', 'Flexibility', 'Sports')),
		muscle_groups TEXT NOT NULL,
		equipment TEXT,
		instructions TEXT,
		is_custom INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		duration INTEGER,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		order_index INTEGER NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_exercise_id INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight REAL,
		distance REAL,
		duration INTEGER,
		rest_time INTEGER,
		notes TEXT,
		FOREIGN KEY (workout_exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS template_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		order_index INTEGER NOT NULL,
		default_sets INTEGER,
		default_reps INTEGER,
		default_weight REAL,
		FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS personal_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		record_type TEXT NOT NULL CHECK (record_type IN ('weight', 'reps', 'volume', 'distance', 'duration')),
		value REAL NOT NULL,
		date TEXT NOT NULL,
		workout_id INTEGER,
		created_at TEXT NOT NULL,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id),
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date DESC);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_sets_workout_exercise ON sets(workout_exercise_id);
	CREATE INDEX IF NOT EXISTS idx_template_exercises_template ON template_exercises(template_id);
	CREATE INDEX IF NOT EXISTS idx_personal_records_exercise ON personal_records(exercise_id);
	`

// initSchema creates the version table and applies pending migrations.
func (d *DB) initSchema(ctx context.Context, conn *sql.DB) error {
	return migrate(ctx, conn)
}
