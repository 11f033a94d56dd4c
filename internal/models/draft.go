// ABOUTME: WorkoutDraft, the in-progress session saved in one step.
// ABOUTME: Drafts come from the user or from applying a template.
package models

// WorkoutDraft is a workout with its exercises and sets, not yet stored.
type WorkoutDraft struct {
	Name      string          `json:"name"`
	Date      Date            `json:"date"`
	Duration  *int            `json:"duration,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Exercises []DraftExercise `json:"exercises"`
}

// DraftExercise is one exercise of a draft. Set numbers are assigned on save.
type DraftExercise struct {
	ExerciseID int64 `json:"exercise_id"`
	Sets       []Set `json:"sets"`
}

// Workout returns the workout row described by the draft.
func (d *WorkoutDraft) Workout() *Workout {
	return &Workout{
		Name:     d.Name,
		Date:     d.Date,
		Duration: d.Duration,
		Notes:    d.Notes,
	}
}

// Validate checks the workout fields and that at least one set is logged.
func (d *WorkoutDraft) Validate() error {
	if err := d.Workout().Validate(); err != nil {
		return err
	}
	for _, ex := range d.Exercises {
		if len(ex.Sets) > 0 {
			return nil
		}
	}
	return invalid("sets", "add at least one set to the workout")
}
