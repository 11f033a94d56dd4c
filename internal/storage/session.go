// ABOUTME: Saves a complete workout draft in one transaction and checks records.
// ABOUTME: Also turns a template into a pre-filled draft.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/sirupsen/logrus"
)

// SaveResult is the outcome of SaveWorkout.
type SaveResult struct {
	WorkoutID int64                    `json:"workout_id"`
	Records   []*models.PersonalRecord `json:"records"`
}

// SaveWorkout stores a draft as a workout with its exercises and sets, then
// checks every set for a personal record: weight for strength sets and
// distance for cardio sets. Exercises without sets are skipped. Nothing is
// stored if any step fails.
func (d *DB) SaveWorkout(ctx context.Context, draft *models.WorkoutDraft) (*SaveResult, error) {
	result := &SaveResult{Records: []*models.PersonalRecord{}}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if err := draft.Validate(); err != nil {
			return err
		}

		w := draft.Workout()
		w.CreatedAt = d.stamp()
		workoutID, err := insertWorkout(ctx, tx, w)
		if err != nil {
			return fmt.Errorf("save workout: %w", err)
		}
		result.WorkoutID = workoutID

		order := 0
		for _, ex := range draft.Exercises {
			if len(ex.Sets) == 0 {
				continue
			}

			category, err := exerciseCategory(ctx, tx, ex.ExerciseID)
			if err != nil {
				return err
			}

			weID, err := insertWorkoutExercise(ctx, tx, &models.WorkoutExercise{
				WorkoutID:  workoutID,
				ExerciseID: ex.ExerciseID,
				OrderIndex: order,
			})
			if err != nil {
				return fmt.Errorf("save workout exercise: %w", err)
			}
			order++

			for i, s := range ex.Sets {
				if err := s.ValidateFor(category); err != nil {
					return err
				}
				s.WorkoutExerciseID = weID
				s.SetNumber = i + 1
				if _, err := insertSet(ctx, tx, &s); err != nil {
					return fmt.Errorf("save set: %w", err)
				}

				pr := recordCandidate(category, s)
				if pr == nil {
					continue
				}
				pr.ExerciseID = ex.ExerciseID
				pr.Date = draft.Date
				pr.WorkoutID = &workoutID
				pr.CreatedAt = d.stamp()

				isNew, err := recordIfHigher(ctx, tx, pr)
				if err != nil {
					return err
				}
				if isNew {
					result.Records = append(result.Records, pr)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"workout_id": result.WorkoutID,
		"records":    len(result.Records),
	}).Debug("saved workout")
	return result, nil
}

// recordCandidate returns the record a set could set for its category, or
// nil when the set carries no tracked value.
func recordCandidate(category models.Category, s models.Set) *models.PersonalRecord {
	switch models.ShapeFor(category) {
	case models.ShapeLoad:
		if s.Weight != nil {
			return &models.PersonalRecord{RecordType: models.RecordWeight, Value: *s.Weight}
		}
	case models.ShapeCardio:
		if s.Distance != nil {
			return &models.PersonalRecord{RecordType: models.RecordDistance, Value: *s.Distance}
		}
	}
	return nil
}

// ApplyTemplate builds a draft from a template. Each template exercise gets
// DefaultSets sets (one when unset) pre-filled with the default reps and
// weight where the exercise category takes them. An empty name uses the
// template name and a zero date means today. The template is not modified.
func (d *DB) ApplyTemplate(ctx context.Context, templateID int64, name string, date models.Date) (*models.WorkoutDraft, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}

	t, err := getTemplateWithExercises(ctx, conn, templateID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = t.Name
	}
	if date.IsZero() {
		date = d.today()
	}

	draft := &models.WorkoutDraft{Name: name, Date: date, Exercises: []models.DraftExercise{}}
	for _, te := range t.Exercises {
		count := 1
		if te.DefaultSets != nil && *te.DefaultSets > 0 {
			count = *te.DefaultSets
		}

		ex := models.DraftExercise{ExerciseID: te.ExerciseID, Sets: make([]models.Set, 0, count)}
		for i := 0; i < count; i++ {
			var s models.Set
			if models.ShapeFor(te.Exercise.Category) != models.ShapeCardio {
				s.Reps = copyPtr(te.DefaultReps)
				s.Weight = copyPtr(te.DefaultWeight)
			}
			ex.Sets = append(ex.Sets, s)
		}
		draft.Exercises = append(draft.Exercises, ex)
	}
	return draft, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
