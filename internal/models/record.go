// ABOUTME: PersonalRecord model and RecordType enum.
// ABOUTME: Records are append-only; a new row means a new maximum.
package models

import "time"

// RecordType is the metric a personal record tracks.
type RecordType string

const (
	RecordWeight   RecordType = "weight"
	RecordReps     RecordType = "reps"
	RecordVolume   RecordType = "volume"
	RecordDistance RecordType = "distance"
	RecordDuration RecordType = "duration"
)

// AllRecordTypes lists every valid record type.
var AllRecordTypes = []RecordType{
	RecordWeight, RecordReps, RecordVolume, RecordDistance, RecordDuration,
}

// Valid reports whether r is a known record type.
func (r RecordType) Valid() bool {
	for _, known := range AllRecordTypes {
		if r == known {
			return true
		}
	}
	return false
}

// PersonalRecord is the maximum value reached for an exercise and metric.
// WorkoutID is nil once the originating workout has been deleted.
type PersonalRecord struct {
	ID           int64      `json:"id" yaml:"id"`
	ExerciseID   int64      `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName string     `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	RecordType   RecordType `json:"record_type" yaml:"record_type"`
	Value        float64    `json:"value" yaml:"value"`
	Date         Date       `json:"date" yaml:"date"`
	WorkoutID    *int64     `json:"workout_id" yaml:"workout_id"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
}
