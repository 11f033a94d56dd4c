// ABOUTME: Repository interface for fitness data storage.
// ABOUTME: Defines the command/query surface used by the CLI and MCP server.
package storage

import (
	"context"

	"github.com/harperreed/fitlog/internal/models"
)

// Repository defines the storage interface for fitness data.
type Repository interface {
	// Exercise operations
	CreateExercise(ctx context.Context, e *models.Exercise) (int64, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	ListExercises(ctx context.Context, filter ExerciseFilter) ([]*models.Exercise, error)
	UpdateExercise(ctx context.Context, id int64, patch models.ExercisePatch) error
	DeleteExercise(ctx context.Context, id int64) error

	// Workout operations
	CreateWorkout(ctx context.Context, w *models.Workout) (int64, error)
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	GetWorkoutWithExercises(ctx context.Context, id int64) (*models.WorkoutWithExercises, error)
	ListWorkouts(ctx context.Context, limit, offset int) ([]*models.Workout, error)
	UpdateWorkout(ctx context.Context, id int64, patch models.WorkoutPatch) error
	DeleteWorkout(ctx context.Context, id int64) error
	AddExerciseToWorkout(ctx context.Context, workoutID, exerciseID int64, orderIndex int) (int64, error)
	RemoveExerciseFromWorkout(ctx context.Context, workoutExerciseID int64) error
	SaveWorkout(ctx context.Context, draft *models.WorkoutDraft) (*SaveResult, error)

	// Set operations
	AddSet(ctx context.Context, s *models.Set) (int64, error)
	GetSet(ctx context.Context, id int64) (*models.Set, error)
	UpdateSet(ctx context.Context, id int64, patch models.SetPatch) error
	DeleteSet(ctx context.Context, id int64) error

	// Template operations
	CreateTemplate(ctx context.Context, t *models.Template) (int64, error)
	GetTemplate(ctx context.Context, id int64) (*models.Template, error)
	GetTemplateWithExercises(ctx context.Context, id int64) (*models.TemplateWithExercises, error)
	ListTemplates(ctx context.Context) ([]*models.Template, error)
	UpdateTemplate(ctx context.Context, id int64, patch models.TemplatePatch) error
	DeleteTemplate(ctx context.Context, id int64) error
	AddExerciseToTemplate(ctx context.Context, te *models.TemplateExercise) (int64, error)
	CreateTemplateWithExercises(ctx context.Context, t *models.Template, exercises []*models.TemplateExercise) (int64, error)
	ApplyTemplate(ctx context.Context, templateID int64, name string, date models.Date) (*models.WorkoutDraft, error)

	// Statistics and records
	GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error)
	GetExerciseProgress(ctx context.Context, exerciseID int64, days int) (*models.ExerciseProgress, error)
	GetPersonalRecords(ctx context.Context, limit int) ([]*models.PersonalRecord, error)
	CheckAndCreateRecord(ctx context.Context, exerciseID int64, recordType models.RecordType, value float64, workoutID *int64, date models.Date) (bool, error)

	// Export/Import
	ExportSnapshot(ctx context.Context) (*Snapshot, error)
	ImportSnapshot(ctx context.Context, snap *Snapshot) (*ImportSummary, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportYAML(ctx context.Context) ([]byte, error)
	ExportMarkdown(ctx context.Context, since models.Date) (string, error)
	ImportJSON(ctx context.Context, data []byte) (*ImportSummary, error)
	ImportYAML(ctx context.Context, data []byte) (*ImportSummary, error)

	// Lifecycle
	Ready() bool
	Close() error
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)
