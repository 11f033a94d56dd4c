// ABOUTME: MCP tool handlers for workouts, sets and templates.
// ABOUTME: Includes one-step workout logging and template application.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

type listWorkoutsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"Number of workouts to skip"`
}

type createWorkoutInput struct {
	Name     string `json:"name" jsonschema:"Workout name"`
	Date     string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Duration *int   `json:"duration,omitempty" jsonschema:"Duration in minutes"`
	Notes    string `json:"notes,omitempty" jsonschema:"Workout notes"`
}

type updateWorkoutInput struct {
	ID       int64   `json:"id" jsonschema:"Workout ID"`
	Name     *string `json:"name,omitempty" jsonschema:"New name"`
	Date     *string `json:"date,omitempty" jsonschema:"New date (YYYY-MM-DD)"`
	Duration *int    `json:"duration,omitempty" jsonschema:"New duration in minutes"`
	Notes    *string `json:"notes,omitempty" jsonschema:"New notes, empty to clear"`
}

type addWorkoutExerciseInput struct {
	WorkoutID  int64 `json:"workout_id" jsonschema:"Workout ID"`
	ExerciseID int64 `json:"exercise_id" jsonschema:"Exercise ID"`
	OrderIndex *int  `json:"order_index,omitempty" jsonschema:"Position in the workout, defaults to last"`
}

type addSetInput struct {
	WorkoutExerciseID int64    `json:"workout_exercise_id" jsonschema:"ID of the exercise entry within the workout"`
	Reps              *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	Weight            *float64 `json:"weight,omitempty" jsonschema:"Weight lifted"`
	Distance          *float64 `json:"distance,omitempty" jsonschema:"Distance in meters"`
	Duration          *int     `json:"duration,omitempty" jsonschema:"Duration in seconds"`
	RestTime          *int     `json:"rest_time,omitempty" jsonschema:"Rest after the set in seconds"`
	Notes             *string  `json:"notes,omitempty" jsonschema:"Set notes"`
}

type updateSetInput struct {
	ID       int64    `json:"id" jsonschema:"Set ID"`
	Reps     *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	Weight   *float64 `json:"weight,omitempty" jsonschema:"Weight lifted"`
	Distance *float64 `json:"distance,omitempty" jsonschema:"Distance in meters"`
	Duration *int     `json:"duration,omitempty" jsonschema:"Duration in seconds"`
	RestTime *int     `json:"rest_time,omitempty" jsonschema:"Rest after the set in seconds"`
	Notes    *string  `json:"notes,omitempty" jsonschema:"Set notes, empty to clear"`
	Clear    []string `json:"clear,omitempty" jsonschema:"Fields to clear: reps, weight, distance, duration, rest_time"`
}

type draftExerciseInput struct {
	ExerciseID int64      `json:"exercise_id" jsonschema:"Exercise ID"`
	Sets       []setInput `json:"sets" jsonschema:"Sets in the order performed"`
}

type logWorkoutInput struct {
	Name      string               `json:"name" jsonschema:"Workout name"`
	Date      string               `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Duration  *int                 `json:"duration,omitempty" jsonschema:"Duration in minutes"`
	Notes     string               `json:"notes,omitempty" jsonschema:"Workout notes"`
	Exercises []draftExerciseInput `json:"exercises" jsonschema:"Exercises in the order performed"`
}

type templateExerciseInput struct {
	ExerciseID    int64    `json:"exercise_id" jsonschema:"Exercise ID"`
	DefaultSets   *int     `json:"default_sets,omitempty" jsonschema:"Suggested number of sets"`
	DefaultReps   *int     `json:"default_reps,omitempty" jsonschema:"Suggested reps per set"`
	DefaultWeight *float64 `json:"default_weight,omitempty" jsonschema:"Suggested weight"`
}

type createTemplateInput struct {
	Name        string                  `json:"name" jsonschema:"Template name"`
	Description string                  `json:"description,omitempty" jsonschema:"What the template is for"`
	Exercises   []templateExerciseInput `json:"exercises,omitempty" jsonschema:"Exercises in order"`
}

type applyTemplateInput struct {
	TemplateID int64  `json:"template_id" jsonschema:"Template ID"`
	Name       string `json:"name,omitempty" jsonschema:"Workout name, defaults to the template name"`
	Date       string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Save       bool   `json:"save,omitempty" jsonschema:"Save the workout instead of returning a draft"`
}

// Workouts

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	workouts, err := s.repo.ListWorkouts(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}

	return nil, map[string]any{"workouts": workouts, "count": len(workouts)}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetWorkoutWithExercises(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %w", err)
	}
	return nil, w, nil
}

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, createdOutput, error) {
	date, err := parseDateInput("date", input.Date)
	if err != nil {
		return nil, createdOutput{}, err
	}
	if date.IsZero() {
		date = today()
	}

	w := models.NewWorkout(input.Name, date)
	w.Duration = input.Duration
	w.Notes = optionalText(input.Notes)

	id, err := s.repo.CreateWorkout(ctx, w)
	if err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, createdOutput{
		ID:      id,
		Message: fmt.Sprintf("Created workout %s on %s (ID: %d)", input.Name, date, id),
	}, nil
}

func (s *Server) handleUpdateWorkout(ctx context.Context, req *mcp.CallToolRequest, input updateWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.repo.GetWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %w", err)
	}

	patch := models.WorkoutPatch{
		Name:     models.FromPtr(input.Name),
		Duration: models.FromPtr(input.Duration),
		Notes:    textOpt(input.Notes),
	}
	if input.Date != nil {
		date, err := parseDateInput("date", *input.Date)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		patch.Date = models.Some(date)
	}
	if patch.IsEmpty() {
		return nil, simpleOutput{Message: "Nothing to update."}, nil
	}

	if err := s.repo.UpdateWorkout(ctx, input.ID, patch); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update workout: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Updated workout %d", input.ID)}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.repo.GetWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %w", err)
	}

	if err := s.repo.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %d", input.ID)}, nil
}

func (s *Server) handleAddWorkoutExercise(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutExerciseInput) (*mcp.CallToolResult, createdOutput, error) {
	var order int
	if input.OrderIndex != nil {
		order = *input.OrderIndex
	} else {
		w, err := s.repo.GetWorkoutWithExercises(ctx, input.WorkoutID)
		if err != nil {
			return nil, createdOutput{}, fmt.Errorf("workout not found: %w", err)
		}
		order = len(w.Exercises)
	}

	id, err := s.repo.AddExerciseToWorkout(ctx, input.WorkoutID, input.ExerciseID, order)
	if err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to add exercise to workout: %w", err)
	}

	return nil, createdOutput{
		ID:      id,
		Message: fmt.Sprintf("Added exercise %d to workout %d at position %d (entry ID: %d)", input.ExerciseID, input.WorkoutID, order, id),
	}, nil
}

func (s *Server) handleRemoveWorkoutExercise(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.RemoveExerciseFromWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove exercise from workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed workout exercise: %d", input.ID)}, nil
}

// Sets

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, createdOutput, error) {
	set := setInput{
		Reps:     input.Reps,
		Weight:   input.Weight,
		Distance: input.Distance,
		Duration: input.Duration,
		RestTime: input.RestTime,
		Notes:    input.Notes,
	}.set()
	set.WorkoutExerciseID = input.WorkoutExerciseID

	id, err := s.repo.AddSet(ctx, &set)
	if err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	return nil, createdOutput{
		ID:      id,
		Message: fmt.Sprintf("Logged set %d: %s (ID: %d)", set.SetNumber, storage.FormatSet(set), id),
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.repo.GetSet(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("set not found: %w", err)
	}

	patch := models.SetPatch{
		Reps:     models.FromPtr(input.Reps),
		Weight:   models.FromPtr(input.Weight),
		Distance: models.FromPtr(input.Distance),
		Duration: models.FromPtr(input.Duration),
		RestTime: models.FromPtr(input.RestTime),
		Notes:    textOpt(input.Notes),
	}
	for _, field := range input.Clear {
		switch field {
		case "reps":
			patch.Reps = models.Null[int]()
		case "weight":
			patch.Weight = models.Null[float64]()
		case "distance":
			patch.Distance = models.Null[float64]()
		case "duration":
			patch.Duration = models.Null[int]()
		case "rest_time":
			patch.RestTime = models.Null[int]()
		case "notes":
			patch.Notes = models.Null[string]()
		default:
			return nil, simpleOutput{}, fmt.Errorf("unknown set field %q", field)
		}
	}
	if patch.IsEmpty() {
		return nil, simpleOutput{Message: "Nothing to update."}, nil
	}

	if err := s.repo.UpdateSet(ctx, input.ID, patch); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update set: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Updated set %d", input.ID)}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteSet(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted set: %d", input.ID)}, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, any, error) {
	date, err := parseDateInput("date", input.Date)
	if err != nil {
		return nil, nil, err
	}
	if date.IsZero() {
		date = today()
	}

	draft := &models.WorkoutDraft{
		Name:      input.Name,
		Date:      date,
		Duration:  input.Duration,
		Notes:     optionalText(input.Notes),
		Exercises: make([]models.DraftExercise, 0, len(input.Exercises)),
	}
	for _, ex := range input.Exercises {
		de := models.DraftExercise{ExerciseID: ex.ExerciseID, Sets: make([]models.Set, 0, len(ex.Sets))}
		for _, set := range ex.Sets {
			de.Sets = append(de.Sets, set.set())
		}
		draft.Exercises = append(draft.Exercises, de)
	}

	return s.saveDraft(ctx, draft)
}

func (s *Server) saveDraft(ctx context.Context, draft *models.WorkoutDraft) (*mcp.CallToolResult, any, error) {
	result, err := s.repo.SaveWorkout(ctx, draft)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save workout: %w", err)
	}

	return nil, map[string]any{
		"workout_id": result.WorkoutID,
		"records":    result.Records,
		"message": fmt.Sprintf("Saved workout %s on %s (ID: %d) with %d new personal record(s)",
			draft.Name, draft.Date, result.WorkoutID, len(result.Records)),
	}, nil
}

// Templates

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		return nil, map[string]any{"message": "No templates found."}, nil
	}

	return nil, map[string]any{"templates": templates, "count": len(templates)}, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	t, err := s.repo.GetTemplateWithExercises(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("template not found: %w", err)
	}
	return nil, t, nil
}

func (s *Server) handleCreateTemplate(ctx context.Context, req *mcp.CallToolRequest, input createTemplateInput) (*mcp.CallToolResult, createdOutput, error) {
	t := models.NewTemplate(input.Name)
	t.Description = optionalText(input.Description)

	entries := make([]*models.TemplateExercise, 0, len(input.Exercises))
	for _, ex := range input.Exercises {
		entries = append(entries, &models.TemplateExercise{
			ExerciseID:    ex.ExerciseID,
			DefaultSets:   ex.DefaultSets,
			DefaultReps:   ex.DefaultReps,
			DefaultWeight: ex.DefaultWeight,
		})
	}

	id, err := s.repo.CreateTemplateWithExercises(ctx, t, entries)
	if err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to create template: %w", err)
	}

	return nil, createdOutput{
		ID:      id,
		Message: fmt.Sprintf("Created template %s with %d exercise(s) (ID: %d)", input.Name, len(input.Exercises), id),
	}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.repo.GetTemplate(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("template not found: %w", err)
	}

	if err := s.repo.DeleteTemplate(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete template: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted template: %d", input.ID)}, nil
}

func (s *Server) handleApplyTemplate(ctx context.Context, req *mcp.CallToolRequest, input applyTemplateInput) (*mcp.CallToolResult, any, error) {
	date, err := parseDateInput("date", input.Date)
	if err != nil {
		return nil, nil, err
	}
	if date.IsZero() {
		date = today()
	}

	draft, err := s.repo.ApplyTemplate(ctx, input.TemplateID, input.Name, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply template: %w", err)
	}

	if !input.Save {
		return nil, map[string]any{"draft": draft}, nil
	}
	return s.saveDraft(ctx, draft)
}
