// ABOUTME: MCP tool handlers for statistics, progress, records and data transfer.
// ABOUTME: Export returns the document inline; import takes it inline.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

type getProgressInput struct {
	ExerciseID int64 `json:"exercise_id" jsonschema:"Exercise ID"`
	Days       int   `json:"days,omitempty" jsonschema:"Trailing window in days (default 90)"`
}

type listRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type checkRecordInput struct {
	ExerciseID int64   `json:"exercise_id" jsonschema:"Exercise ID"`
	RecordType string  `json:"record_type" jsonschema:"Record type (weight, reps, volume, distance, duration)"`
	Value      float64 `json:"value" jsonschema:"Achieved value"`
	WorkoutID  *int64  `json:"workout_id,omitempty" jsonschema:"Workout the value was achieved in"`
	Date       string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type recordOutput struct {
	IsNewRecord bool   `json:"is_new_record"`
	Message     string `json:"message"`
}

type exportInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default), yaml or markdown"`
	Since  string `json:"since,omitempty" jsonschema:"Markdown only: first workout date to include (YYYY-MM-DD)"`
}

type exportOutput struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

type importInput struct {
	Format string `json:"format,omitempty" jsonschema:"Input format: json (default) or yaml"`
	Data   string `json:"data" jsonschema:"The exported document"`
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, *models.WorkoutStats, error) {
	stats, err := s.repo.GetWorkoutStats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return nil, stats, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input getProgressInput) (*mcp.CallToolResult, any, error) {
	if input.Days <= 0 {
		input.Days = s.progressDays
	}

	progress, err := s.repo.GetExerciseProgress(ctx, input.ExerciseID, input.Days)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}

	if progress == nil {
		return nil, map[string]any{
			"message": fmt.Sprintf("No sets logged for exercise %d in the last %d days.", input.ExerciseID, input.Days),
		}, nil
	}

	return nil, progress, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = s.recordLimit
	}

	records, err := s.repo.GetPersonalRecords(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		return nil, map[string]any{"message": "No personal records yet."}, nil
	}

	return nil, map[string]any{"records": records, "count": len(records)}, nil
}

func (s *Server) handleCheckRecord(ctx context.Context, req *mcp.CallToolRequest, input checkRecordInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := parseDateInput("date", input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	recordType := models.RecordType(strings.ToLower(strings.TrimSpace(input.RecordType)))
	isNew, err := s.repo.CheckAndCreateRecord(ctx, input.ExerciseID, recordType, input.Value, input.WorkoutID, date)
	if err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to check record: %w", err)
	}

	msg := fmt.Sprintf("%.2f is not above the current best %s", input.Value, recordType)
	if isNew {
		msg = fmt.Sprintf("New personal record: %s %.2f", recordType, input.Value)
	}
	return nil, recordOutput{IsNewRecord: isNew, Message: msg}, nil
}

func (s *Server) handleExportData(ctx context.Context, req *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, exportOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = "json"
	}

	var data string
	switch format {
	case "json":
		b, err := s.repo.ExportJSON(ctx)
		if err != nil {
			return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
		}
		data = string(b)
	case "yaml":
		b, err := s.repo.ExportYAML(ctx)
		if err != nil {
			return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
		}
		data = string(b)
	case "markdown", "md":
		since, err := parseDateInput("since", input.Since)
		if err != nil {
			return nil, exportOutput{}, err
		}
		format = "markdown"
		data, err = s.repo.ExportMarkdown(ctx, since)
		if err != nil {
			return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
		}
	default:
		return nil, exportOutput{}, fmt.Errorf("unknown export format %q (use json, yaml or markdown)", input.Format)
	}

	return nil, exportOutput{Format: format, Data: data}, nil
}

func (s *Server) handleImportData(ctx context.Context, req *mcp.CallToolRequest, input importInput) (*mcp.CallToolResult, any, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))

	var err error
	var summary *storage.ImportSummary
	switch format {
	case "", "json":
		summary, err = s.repo.ImportJSON(ctx, []byte(input.Data))
	case "yaml", "yml":
		summary, err = s.repo.ImportYAML(ctx, []byte(input.Data))
	default:
		return nil, nil, fmt.Errorf("unknown import format %q (use json or yaml)", input.Format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import: %w", err)
	}

	return nil, map[string]any{"message": "Import complete.", "summary": summary}, nil
}
