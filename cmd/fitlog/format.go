// ABOUTME: Parsing and formatting helpers shared by fitlog commands.
// ABOUTME: Handles dates, set specs like 5x100, and exercise lookup by name.
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

// parseDate accepts YYYY-MM-DD, "today", "yesterday" and the timestamp
// formats people tend to paste. An empty string means today.
func parseDate(s string) (models.Date, error) {
	now := time.Now()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return models.DateOf(now), nil
	case "yesterday":
		return models.DateOf(now).AddDays(-1), nil
	}

	formats := []string{
		models.DateLayout,
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return models.DateOf(t), nil
		}
	}
	return models.Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}

// parseSetSpec parses one set:
//
//	5x100        5 reps at 100
//	12           12 reps
//	5000m/1500s  5000 meters in 1500 seconds
//	5km/25min    same, with unit conversion
//	60s          60 seconds
func parseSetSpec(spec string) (models.Set, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	s = strings.ReplaceAll(s, "×", "x")
	if s == "" {
		return models.Set{}, fmt.Errorf("empty set")
	}

	if reps, weight, ok := strings.Cut(s, "x"); ok {
		r, err := strconv.Atoi(strings.TrimSpace(reps))
		if err != nil {
			return models.Set{}, fmt.Errorf("invalid reps in set %q", spec)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil {
			return models.Set{}, fmt.Errorf("invalid weight in set %q", spec)
		}
		return models.LoadSet(r, w), nil
	}

	if r, err := strconv.Atoi(s); err == nil {
		return models.Set{Reps: &r}, nil
	}

	var set models.Set
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasSuffix(part, "km"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "km"), 64)
			if err != nil {
				return models.Set{}, fmt.Errorf("invalid distance in set %q", spec)
			}
			meters := v * 1000
			set.Distance = &meters
		case strings.HasSuffix(part, "min"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "min"), 64)
			if err != nil {
				return models.Set{}, fmt.Errorf("invalid duration in set %q", spec)
			}
			seconds := int(v * 60)
			set.Duration = &seconds
		case strings.HasSuffix(part, "m"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "m"), 64)
			if err != nil {
				return models.Set{}, fmt.Errorf("invalid distance in set %q", spec)
			}
			set.Distance = &v
		case strings.HasSuffix(part, "s"):
			v, err := strconv.Atoi(strings.TrimSuffix(part, "s"))
			if err != nil {
				return models.Set{}, fmt.Errorf("invalid duration in set %q", spec)
			}
			set.Duration = &v
		default:
			return models.Set{}, fmt.Errorf("unrecognized set %q (try 5x100, 12, 5000m/1500s)", spec)
		}
	}
	return set, nil
}

// splitExerciseSpec splits "Bench Press:5x100,5x105" into the exercise and
// the comma-separated values. The values part is optional.
func splitExerciseSpec(spec string) (string, []string) {
	name, values, ok := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if !ok || strings.TrimSpace(values) == "" {
		return name, nil
	}
	var parts []string
	for _, v := range strings.Split(values, ",") {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return name, parts
}

// templateDefaults parses "3x5@100" (sets x reps @ weight). Each piece is optional.
func templateDefaults(spec string) (sets, reps *int, weight *float64, err error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return nil, nil, nil, nil
	}

	if head, w, ok := strings.Cut(s, "@"); ok {
		v, perr := strconv.ParseFloat(strings.TrimSpace(w), 64)
		if perr != nil {
			return nil, nil, nil, fmt.Errorf("invalid weight in %q", spec)
		}
		weight = &v
		s = strings.TrimSpace(head)
	}
	if s == "" {
		return nil, nil, weight, nil
	}

	setsPart, repsPart, hasReps := strings.Cut(s, "x")
	n, perr := strconv.Atoi(strings.TrimSpace(setsPart))
	if perr != nil {
		return nil, nil, nil, fmt.Errorf("invalid set count in %q", spec)
	}
	sets = &n
	if hasReps {
		r, perr := strconv.Atoi(strings.TrimSpace(repsPart))
		if perr != nil {
			return nil, nil, nil, fmt.Errorf("invalid reps in %q", spec)
		}
		reps = &r
	}
	return sets, reps, weight, nil
}

// resolveExercise finds an exercise by ID or by case-insensitive name.
func resolveExercise(ctx context.Context, repo storage.Repository, ref string) (*models.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		e, err := repo.GetExercise(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("exercise %d not found", id)
		}
		return e, nil
	}

	matches, err := repo.ListExercises(ctx, storage.ExerciseFilter{Search: ref})
	if err != nil {
		return nil, fmt.Errorf("failed to look up exercise: %w", err)
	}
	for _, e := range matches {
		if strings.EqualFold(e.Name, ref) {
			return e, nil
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("unknown exercise %q (see 'fitlog exercise list')", ref)
	}
	names := make([]string, 0, 3)
	for _, e := range matches {
		if len(names) == 3 {
			break
		}
		names = append(names, e.Name)
	}
	return nil, fmt.Errorf("exercise %q is ambiguous: %s", ref, strings.Join(names, ", "))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
