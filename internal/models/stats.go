// ABOUTME: Aggregate result types for dashboard statistics and progress.
// ABOUTME: Produced by the storage statistics queries.
package models

// WorkoutStats summarizes all logged workouts.
type WorkoutStats struct {
	TotalWorkouts     int     `json:"total_workouts" yaml:"total_workouts"`
	TotalVolume       float64 `json:"total_volume" yaml:"total_volume"`
	TotalDuration     int     `json:"total_duration" yaml:"total_duration"`
	AverageDuration   float64 `json:"average_duration" yaml:"average_duration"`
	WorkoutsThisWeek  int     `json:"workouts_this_week" yaml:"workouts_this_week"`
	WorkoutsThisMonth int     `json:"workouts_this_month" yaml:"workouts_this_month"`
}

// ExerciseProgress summarizes one exercise over a trailing window.
type ExerciseProgress struct {
	ExerciseID    int64           `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName  string          `json:"exercise_name" yaml:"exercise_name"`
	MaxWeight     float64         `json:"max_weight" yaml:"max_weight"`
	MaxReps       int             `json:"max_reps" yaml:"max_reps"`
	TotalVolume   float64         `json:"total_volume" yaml:"total_volume"`
	LastPerformed Date            `json:"last_performed" yaml:"last_performed"`
	ProgressData  []ProgressPoint `json:"progress_data" yaml:"progress_data"`
}

// ProgressPoint is one workout date in a progress series.
type ProgressPoint struct {
	Date        Date    `json:"date" yaml:"date"`
	MaxWeight   float64 `json:"max_weight" yaml:"max_weight"`
	TotalVolume float64 `json:"total_volume" yaml:"total_volume"`
}

// Recent returns the last n points, oldest first.
func (p *ExerciseProgress) Recent(n int) []ProgressPoint {
	if n <= 0 || n >= len(p.ProgressData) {
		return p.ProgressData
	}
	return p.ProgressData[len(p.ProgressData)-n:]
}
