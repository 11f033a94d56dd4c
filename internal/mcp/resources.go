// ABOUTME: MCP resource implementations for fitlog.
// ABOUTME: Provides fitlog://stats, fitlog://records and fitlog://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	statsURI   = "fitlog://stats"
	recordsURI = "fitlog://records"
	recentURI  = "fitlog://recent"
)

func (s *Server) registerResources() {
	// fitlog://stats - Totals and this week/month counts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Workout Statistics",
		Description: "Workout totals, volume, durations and this week/month counts",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// fitlog://records - Most recent personal records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recordsURI,
		Name:        "Personal Records",
		Description: "Most recently set personal records",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// fitlog://recent - Last workouts with their exercises and sets
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Workouts",
		Description: "Last 5 workouts with exercises and sets",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.repo.GetWorkoutStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return jsonResource(statsURI, map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.GetPersonalRecords(ctx, s.recordLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return jsonResource(recordsURI, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(ctx, 5, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	details := make([]any, 0, len(workouts))
	for _, w := range workouts {
		full, err := s.repo.GetWorkoutWithExercises(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get workout %d: %w", w.ID, err)
		}
		details = append(details, full)
	}

	return jsonResource(recentURI, map[string]any{
		"workouts": details,
		"count":    len(details),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
