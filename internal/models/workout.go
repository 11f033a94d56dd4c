// ABOUTME: Workout, WorkoutExercise and Set models for logged sessions.
// ABOUTME: A workout owns its exercise instances, which own their sets.
package models

import (
	"time"
)

// Workout is a dated training session.
type Workout struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Date      Date      `json:"date" yaml:"date"`
	Duration  *int      `json:"duration" yaml:"duration"` // minutes
	Notes     *string   `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewWorkout creates a workout on the given date.
func NewWorkout(name string, date Date) *Workout {
	return &Workout{
		Name: name,
		Date: date,
	}
}

// WithDuration sets the duration in minutes.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.Duration = &minutes
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// Validate checks the required fields.
func (w *Workout) Validate() error {
	if isBlank(w.Name) {
		return invalid("name", "workout name is required")
	}
	if w.Date.IsZero() {
		return invalid("date", "workout date is required")
	}
	if w.Duration != nil && *w.Duration < 0 {
		return invalid("duration", "must not be negative")
	}
	return nil
}

// WorkoutExercise places an exercise inside a workout.
type WorkoutExercise struct {
	ID         int64 `json:"id" yaml:"id"`
	WorkoutID  int64 `json:"workout_id" yaml:"workout_id"`
	ExerciseID int64 `json:"exercise_id" yaml:"exercise_id"`
	OrderIndex int   `json:"order_index" yaml:"order_index"`
}

// Set is one performed unit of an exercise instance.
type Set struct {
	ID                int64    `json:"id" yaml:"id"`
	WorkoutExerciseID int64    `json:"workout_exercise_id" yaml:"workout_exercise_id"`
	SetNumber         int      `json:"set_number" yaml:"set_number"`
	Reps              *int     `json:"reps" yaml:"reps"`
	Weight            *float64 `json:"weight" yaml:"weight"`
	Distance          *float64 `json:"distance" yaml:"distance"` // meters
	Duration          *int     `json:"duration" yaml:"duration"` // seconds
	RestTime          *int     `json:"rest_time" yaml:"rest_time"`
	Notes             *string  `json:"notes" yaml:"notes"`
}

// LoadSet returns a reps × weight set.
func LoadSet(reps int, weight float64) Set {
	return Set{Reps: &reps, Weight: &weight}
}

// CardioSet returns a distance/duration set.
func CardioSet(distance float64, seconds int) Set {
	return Set{Distance: &distance, Duration: &seconds}
}

// Volume returns weight × reps when both are present.
func (s Set) Volume() (float64, bool) {
	if s.Weight == nil || s.Reps == nil {
		return 0, false
	}
	return *s.Weight * float64(*s.Reps), true
}

// WorkoutWithExercises is a workout with its exercises and their sets.
type WorkoutWithExercises struct {
	Workout   `yaml:",inline"`
	Exercises []WorkoutExerciseDetail `json:"exercises" yaml:"exercises"`
}

// WorkoutExerciseDetail is one exercise instance with the exercise itself.
type WorkoutExerciseDetail struct {
	WorkoutExercise `yaml:",inline"`
	Exercise        Exercise `json:"exercise" yaml:"exercise"`
	Sets            []Set    `json:"sets" yaml:"sets"`
}

// SetCount returns the number of sets across all exercises.
func (w *WorkoutWithExercises) SetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}
