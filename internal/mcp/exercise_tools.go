// ABOUTME: MCP tool handlers for the exercise library.
// ABOUTME: Lists, creates, updates and deletes exercises.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

type listExercisesInput struct {
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against name and muscle groups"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category (Strength, Cardio, Flexibility, Sports)"`
}

type createExerciseInput struct {
	Name         string   `json:"name" jsonschema:"Exercise name"`
	Category     string   `json:"category" jsonschema:"Category (Strength, Cardio, Flexibility, Sports)"`
	MuscleGroups []string `json:"muscle_groups" jsonschema:"Muscle groups worked, at least one"`
	Equipment    string   `json:"equipment,omitempty" jsonschema:"Equipment used"`
	Instructions string   `json:"instructions,omitempty" jsonschema:"How to perform the exercise"`
}

type updateExerciseInput struct {
	ID           int64    `json:"id" jsonschema:"Exercise ID"`
	Name         *string  `json:"name,omitempty" jsonschema:"New name"`
	Category     *string  `json:"category,omitempty" jsonschema:"New category"`
	MuscleGroups []string `json:"muscle_groups,omitempty" jsonschema:"New muscle groups"`
	Equipment    *string  `json:"equipment,omitempty" jsonschema:"New equipment, empty to clear"`
	Instructions *string  `json:"instructions,omitempty" jsonschema:"New instructions, empty to clear"`
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	filter := storage.ExerciseFilter{Search: input.Search}
	if input.Category != "" {
		c, err := parseCategoryInput(input.Category)
		if err != nil {
			return nil, nil, err
		}
		filter.Category = c
	}

	exercises, err := s.repo.ListExercises(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}

	return nil, map[string]any{"exercises": exercises, "count": len(exercises)}, nil
}

func (s *Server) handleGetExercise(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	e, err := s.repo.GetExercise(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %w", err)
	}
	return nil, e, nil
}

func (s *Server) handleCreateExercise(ctx context.Context, req *mcp.CallToolRequest, input createExerciseInput) (*mcp.CallToolResult, createdOutput, error) {
	c, err := parseCategoryInput(input.Category)
	if err != nil {
		return nil, createdOutput{}, err
	}

	e := models.NewExercise(input.Name, c, input.MuscleGroups...)
	e.Equipment = optionalText(input.Equipment)
	e.Instructions = optionalText(input.Instructions)

	id, err := s.repo.CreateExercise(ctx, e)
	if err != nil {
		return nil, createdOutput{}, fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil, createdOutput{
		ID:      id,
		Message: fmt.Sprintf("Created %s exercise %s (ID: %d)", c, input.Name, id),
	}, nil
}

func (s *Server) handleUpdateExercise(ctx context.Context, req *mcp.CallToolRequest, input updateExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	existing, err := s.repo.GetExercise(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("exercise not found: %w", err)
	}
	if !existing.IsCustom {
		return nil, simpleOutput{}, fmt.Errorf("%s is a built-in exercise and cannot be changed", existing.Name)
	}

	patch := models.ExercisePatch{
		Name:         models.FromPtr(input.Name),
		Equipment:    textOpt(input.Equipment),
		Instructions: textOpt(input.Instructions),
	}
	if input.Category != nil {
		c, err := parseCategoryInput(*input.Category)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		patch.Category = models.Some(c)
	}
	if len(input.MuscleGroups) > 0 {
		patch.MuscleGroups = models.Some(strings.Join(input.MuscleGroups, ","))
	}
	if patch.IsEmpty() {
		return nil, simpleOutput{Message: "Nothing to update."}, nil
	}

	if err := s.repo.UpdateExercise(ctx, input.ID, patch); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Updated exercise %d", input.ID),
	}, nil
}

func (s *Server) handleDeleteExercise(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	existing, err := s.repo.GetExercise(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("exercise not found: %w", err)
	}
	if !existing.IsCustom {
		return nil, simpleOutput{}, fmt.Errorf("%s is a built-in exercise and cannot be deleted", existing.Name)
	}

	if err := s.repo.DeleteExercise(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted exercise: %s", existing.Name),
	}, nil
}
