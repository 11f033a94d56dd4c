// ABOUTME: MCP tool registration and shared input helpers for fitlog.
// ABOUTME: Handlers live in exercise_tools.go, workout_tools.go and insight_tools.go.
package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fitlog/internal/models"
)

func (s *Server) registerTools() {
	// exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercises, optionally filtered by search text or category",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise",
		Description: "Get one exercise by ID",
	}, s.handleGetExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_exercise",
		Description: "Create a custom exercise",
	}, s.handleCreateExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_exercise",
		Description: "Update a custom exercise. Built-in exercises cannot be changed",
	}, s.handleUpdateExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_exercise",
		Description: "Delete a custom exercise that no workout, template or record uses",
	}, s.handleDeleteExercise)

	// workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Create an empty workout session",
	}, s.handleCreateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_workout",
		Description: "Update a workout's name, date, duration or notes",
	}, s.handleUpdateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout with its exercises and sets",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout_exercise",
		Description: "Add an exercise to a workout at the given position",
	}, s.handleAddWorkoutExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_workout_exercise",
		Description: "Remove an exercise and its sets from a workout",
	}, s.handleRemoveWorkoutExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Log a set for an exercise in a workout. Strength sets take reps/weight, cardio sets take distance/duration",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Update the values of a logged set",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a set and renumber the sets after it",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Save a complete workout with exercises and sets in one step, reporting new personal records",
	}, s.handleLogWorkout)

	// templates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List workout templates",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_template",
		Description: "Get a template with its exercises",
	}, s.handleGetTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_template",
		Description: "Create a workout template with default sets, reps and weight per exercise",
	}, s.handleCreateTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_template",
		Description: "Delete a template",
	}, s.handleDeleteTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "apply_template",
		Description: "Build a workout draft from a template, optionally saving it",
	}, s.handleApplyTemplate)

	// insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get workout totals, volume, durations and this week/month counts",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get per-day progress for an exercise over a trailing window",
	}, s.handleGetProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List the most recent personal records",
	}, s.handleListRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_record",
		Description: "Store a personal record if the value beats the previous best",
	}, s.handleCheckRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_data",
		Description: "Export all data as json, yaml or markdown",
	}, s.handleExportData)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "import_data",
		Description: "Import a json or yaml export. Nothing is written if any entry is invalid",
	}, s.handleImportData)
}

// Shared input/output types

type idInput struct {
	ID int64 `json:"id" jsonschema:"ID of the item"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type createdOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// setInput is a set's values. Which values apply depends on the exercise category.
type setInput struct {
	Reps     *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	Weight   *float64 `json:"weight,omitempty" jsonschema:"Weight lifted"`
	Distance *float64 `json:"distance,omitempty" jsonschema:"Distance in meters"`
	Duration *int     `json:"duration,omitempty" jsonschema:"Duration in seconds"`
	RestTime *int     `json:"rest_time,omitempty" jsonschema:"Rest after the set in seconds"`
	Notes    *string  `json:"notes,omitempty" jsonschema:"Set notes"`
}

func (in setInput) set() models.Set {
	return models.Set{
		Reps:     in.Reps,
		Weight:   in.Weight,
		Distance: in.Distance,
		Duration: in.Duration,
		RestTime: in.RestTime,
		Notes:    in.Notes,
	}
}

// Helpers

// parseDateInput parses an optional YYYY-MM-DD value. Empty means zero.
func parseDateInput(field, value string) (models.Date, error) {
	if strings.TrimSpace(value) == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid %s %q: use YYYY-MM-DD", field, value)
	}
	return d, nil
}

func today() models.Date {
	return models.DateOf(time.Now())
}

func parseCategoryInput(value string) (models.Category, error) {
	c, ok := models.ParseCategory(value)
	if !ok {
		return "", fmt.Errorf("unknown category %q (use Strength, Cardio, Flexibility or Sports)", value)
	}
	return c, nil
}

// textOpt maps an optional text input onto a patch field. An empty string
// clears the field.
func textOpt(p *string) models.Opt[string] {
	if p == nil {
		return models.Opt[string]{}
	}
	if strings.TrimSpace(*p) == "" {
		return models.Null[string]()
	}
	return models.Some(*p)
}

func optionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
