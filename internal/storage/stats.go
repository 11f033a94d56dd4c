// ABOUTME: Aggregate statistics over workouts and per-exercise progress.
// ABOUTME: Week starts Sunday; boundaries come from the injectable clock.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

// DefaultProgressDays is the progress window used when none is given.
const DefaultProgressDays = 90

// GetWorkoutStats summarizes every logged workout. Sets without both weight
// and reps add no volume; workouts without a duration are left out of the
// duration total and average.
func (d *DB) GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	today := d.today()
	var stats models.WorkoutStats
	err = conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM workouts),
			(SELECT COALESCE(SUM(weight * reps), 0) FROM sets WHERE weight IS NOT NULL AND reps IS NOT NULL),
			(SELECT COALESCE(SUM(duration), 0) FROM workouts WHERE duration IS NOT NULL),
			(SELECT COALESCE(AVG(duration), 0) FROM workouts WHERE duration IS NOT NULL),
			(SELECT COUNT(*) FROM workouts WHERE date >= ?),
			(SELECT COUNT(*) FROM workouts WHERE date >= ?)
	`, today.StartOfWeek(), today.StartOfMonth()).Scan(
		&stats.TotalWorkouts,
		&stats.TotalVolume,
		&stats.TotalDuration,
		&stats.AverageDuration,
		&stats.WorkoutsThisWeek,
		&stats.WorkoutsThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("get workout stats: %w", err)
	}
	return &stats, nil
}

// GetExerciseProgress summarizes an exercise over the last days days
// (DefaultProgressDays when days <= 0). It returns nil when the exercise has
// no sets in the window.
func (d *DB) GetExerciseProgress(ctx context.Context, exerciseID int64, days int) (*models.ExerciseProgress, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultProgressDays
	}
	since := d.today().AddDays(-days)

	rows, err := conn.QueryContext(ctx, `
		SELECT w.date,
			MAX(s.weight),
			MAX(s.reps),
			COALESCE(SUM(CASE WHEN s.weight IS NOT NULL AND s.reps IS NOT NULL THEN s.weight * s.reps END), 0)
		FROM sets s
		JOIN workout_exercises we ON we.id = s.workout_exercise_id
		JOIN workouts w ON w.id = we.workout_id
		WHERE we.exercise_id = ? AND w.date >= ?
		GROUP BY w.date
		ORDER BY w.date ASC
	`, exerciseID, since)
	if err != nil {
		return nil, fmt.Errorf("get exercise progress: %w", err)
	}

	progress := &models.ExerciseProgress{ExerciseID: exerciseID}
	for rows.Next() {
		var point models.ProgressPoint
		var maxWeight sql.NullFloat64
		var maxReps sql.NullInt64
		if err := rows.Scan(&point.Date, &maxWeight, &maxReps, &point.TotalVolume); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan progress point: %w", err)
		}
		point.MaxWeight = maxWeight.Float64

		progress.MaxWeight = max(progress.MaxWeight, point.MaxWeight)
		progress.MaxReps = max(progress.MaxReps, int(maxReps.Int64))
		progress.TotalVolume += point.TotalVolume
		progress.LastPerformed = point.Date
		progress.ProgressData = append(progress.ProgressData, point)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get exercise progress: %w", err)
	}
	rows.Close()

	if len(progress.ProgressData) == 0 {
		return nil, nil
	}

	e, err := getExercise(ctx, conn, exerciseID)
	if err != nil {
		return nil, err
	}
	progress.ExerciseName = e.Name
	return progress, nil
}
