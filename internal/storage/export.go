// ABOUTME: Export and import of full-data snapshots.
// ABOUTME: Supports JSON and YAML snapshots plus a Markdown training log.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the document version written by ExportSnapshot.
const SnapshotVersion = "1.0"

// Snapshot is the full export document. Built-in exercises are not
// exported; references to them keep their IDs.
type Snapshot struct {
	Version           string                    `json:"version" yaml:"version"`
	SnapshotID        string                    `json:"snapshot_id" yaml:"snapshot_id"`
	ExportedAt        time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool              string                    `json:"tool" yaml:"tool"`
	Exercises         []models.Exercise         `json:"exercises" yaml:"exercises"`
	Workouts          []models.Workout          `json:"workouts" yaml:"workouts"`
	WorkoutExercises  []models.WorkoutExercise  `json:"workout_exercises" yaml:"workout_exercises"`
	Sets              []models.Set              `json:"sets" yaml:"sets"`
	Templates         []models.Template         `json:"templates" yaml:"templates"`
	TemplateExercises []models.TemplateExercise `json:"template_exercises" yaml:"template_exercises"`
	PersonalRecords   []models.PersonalRecord   `json:"personal_records" yaml:"personal_records"`
}

// ImportSummary counts what ImportSnapshot wrote.
type ImportSummary struct {
	ExercisesCreated  int `json:"exercises_created"`
	ExercisesUpdated  int `json:"exercises_updated"`
	ExercisesMatched  int `json:"exercises_matched"`
	Workouts          int `json:"workouts"`
	WorkoutExercises  int `json:"workout_exercises"`
	Sets              int `json:"sets"`
	Templates         int `json:"templates"`
	TemplateExercises int `json:"template_exercises"`
	PersonalRecords   int `json:"personal_records"`
}

// ExportSnapshot reads every collection inside one transaction so the
// snapshot is consistent. Fields are copied as stored.
func (d *DB) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Version:    SnapshotVersion,
		SnapshotID: uuid.New().String(),
		ExportedAt: d.now().UTC().Truncate(time.Second),
		Tool:       "fitlog",
	}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Exercises, err = collect(ctx, tx,
			"SELECT "+exerciseColumns+" FROM exercises WHERE is_custom = 1 ORDER BY id",
			func(s scanner) (models.Exercise, error) {
				e, err := scanExercise(s)
				if err != nil {
					return models.Exercise{}, err
				}
				return *e, nil
			}); err != nil {
			return fmt.Errorf("export exercises: %w", err)
		}

		if snap.Workouts, err = collect(ctx, tx,
			"SELECT "+workoutColumns+" FROM workouts ORDER BY id",
			func(s scanner) (models.Workout, error) {
				w, err := scanWorkout(s)
				if err != nil {
					return models.Workout{}, err
				}
				return *w, nil
			}); err != nil {
			return fmt.Errorf("export workouts: %w", err)
		}

		if snap.WorkoutExercises, err = collect(ctx, tx,
			"SELECT id, workout_id, exercise_id, order_index FROM workout_exercises ORDER BY id",
			func(s scanner) (models.WorkoutExercise, error) {
				var we models.WorkoutExercise
				err := s.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.OrderIndex)
				return we, err
			}); err != nil {
			return fmt.Errorf("export workout exercises: %w", err)
		}

		if snap.Sets, err = collect(ctx, tx,
			"SELECT "+setColumns+" FROM sets ORDER BY id",
			func(s scanner) (models.Set, error) {
				set, err := scanSet(s)
				if err != nil {
					return models.Set{}, err
				}
				return *set, nil
			}); err != nil {
			return fmt.Errorf("export sets: %w", err)
		}

		if snap.Templates, err = collect(ctx, tx,
			"SELECT "+templateColumns+" FROM templates ORDER BY id",
			func(s scanner) (models.Template, error) {
				t, err := scanTemplate(s)
				if err != nil {
					return models.Template{}, err
				}
				return *t, nil
			}); err != nil {
			return fmt.Errorf("export templates: %w", err)
		}

		if snap.TemplateExercises, err = collect(ctx, tx, `
			SELECT id, template_id, exercise_id, order_index, default_sets, default_reps, default_weight
			FROM template_exercises ORDER BY id`,
			func(s scanner) (models.TemplateExercise, error) {
				var te models.TemplateExercise
				err := s.Scan(&te.ID, &te.TemplateID, &te.ExerciseID, &te.OrderIndex,
					&te.DefaultSets, &te.DefaultReps, &te.DefaultWeight)
				return te, err
			}); err != nil {
			return fmt.Errorf("export template exercises: %w", err)
		}

		if snap.PersonalRecords, err = collect(ctx, tx, `
			SELECT id, exercise_id, record_type, value, date, workout_id, created_at
			FROM personal_records ORDER BY id`,
			func(s scanner) (models.PersonalRecord, error) {
				var pr models.PersonalRecord
				var createdAt string
				err := s.Scan(&pr.ID, &pr.ExerciseID, &pr.RecordType, &pr.Value,
					&pr.Date, &pr.WorkoutID, &createdAt)
				pr.CreatedAt = parseTime(createdAt)
				return pr, err
			}); err != nil {
			return fmt.Errorf("export personal records: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snap.SnapshotID,
		"exercises":   len(snap.Exercises),
		"workouts":    len(snap.Workouts),
		"sets":        len(snap.Sets),
	}).Info("exported snapshot")
	return snap, nil
}

// collect runs query and scans every row with scan. The result is never nil.
func collect[T any](ctx context.Context, q querier, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ImportSnapshot restores snap inside one transaction. Custom exercises are
// upserted by name and category; an exercise matching a built-in maps onto
// it and never overwrites it. Every other row gets a fresh ID with its
// references remapped. References to exercises missing from the snapshot
// resolve only to an existing built-in with the same ID. When any row is
// invalid or dangling, nothing is written and a *ValidationError listing
// every problem is returned.
func (d *DB) ImportSnapshot(ctx context.Context, snap *Snapshot) (*ImportSummary, error) {
	if snap == nil {
		return nil, &ValidationError{Field: "snapshot", Message: "snapshot is empty"}
	}

	summary := &ImportSummary{}
	var problems error

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if snap.Version != "" && snap.Version != SnapshotVersion {
			return &ValidationError{Field: "version", Message: fmt.Sprintf("unsupported snapshot version %q", snap.Version)}
		}

		im := &importer{
			tx:        tx,
			stamp:     d.stamp(),
			summary:   summary,
			exercises: make(map[int64]int64),
			category:  make(map[int64]models.Category),
		}

		steps := []func(context.Context, *Snapshot) error{
			im.importExercises,
			im.importWorkouts,
			im.importWorkoutExercises,
			im.importSets,
			im.importTemplates,
			im.importTemplateExercises,
			im.importPersonalRecords,
		}
		for _, step := range steps {
			if err := step(ctx, snap); err != nil {
				return err
			}
		}

		if im.problems != nil {
			problems = im.problems
			return errImportRejected
		}
		return nil
	})
	if errors.Is(err, errImportRejected) {
		list := multierr.Errors(problems)
		logrus.WithField("problems", len(list)).Warn("snapshot import rejected")
		return nil, &ValidationError{Field: "snapshot", Message: problems.Error()}
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snap.SnapshotID,
		"exercises":   summary.ExercisesCreated + summary.ExercisesUpdated,
		"workouts":    summary.Workouts,
		"sets":        summary.Sets,
	}).Info("imported snapshot")
	return summary, nil
}

var errImportRejected = errors.New("import rejected")

// importer carries the old-to-new ID maps of one import.
type importer struct {
	tx       *sql.Tx
	stamp    time.Time
	summary  *ImportSummary
	problems error

	exercises        map[int64]int64
	category         map[int64]models.Category // keyed by new exercise ID
	workouts         map[int64]int64
	workoutExercises map[int64]int64
	weCategory       map[int64]models.Category // keyed by old workout exercise ID
	templates        map[int64]int64
}

func (im *importer) reject(format string, args ...any) {
	im.problems = multierr.Append(im.problems, fmt.Errorf(format, args...))
}

// createdAt keeps a snapshot timestamp, or uses the import time when absent.
func (im *importer) createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return im.stamp
	}
	return t
}

func (im *importer) importExercises(ctx context.Context, snap *Snapshot) error {
	for _, e := range snap.Exercises {
		if err := e.Validate(); err != nil {
			im.reject("exercise %d: %v", e.ID, err)
			continue
		}

		var existingID int64
		var isCustom bool
		err := im.tx.QueryRowContext(ctx, `
			SELECT id, is_custom FROM exercises
			WHERE name = ? AND category = ?
			ORDER BY is_custom ASC, id ASC
			LIMIT 1
		`, e.Name, string(e.Category)).Scan(&existingID, &isCustom)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			e.IsCustom = true
			e.CreatedAt = im.createdAt(e.CreatedAt)
			id, err := insertExercise(ctx, im.tx, &e)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", e.Name, err)
			}
			im.exercises[e.ID] = id
			im.category[id] = e.Category
			im.summary.ExercisesCreated++
		case err != nil:
			return fmt.Errorf("match exercise %q: %w", e.Name, err)
		case !isCustom:
			im.exercises[e.ID] = existingID
			im.category[existingID] = e.Category
			im.summary.ExercisesMatched++
		default:
			_, err := im.tx.ExecContext(ctx, `
				UPDATE exercises SET muscle_groups = ?, equipment = ?, instructions = ?
				WHERE id = ? AND is_custom = 1
			`, e.MuscleGroups, e.Equipment, e.Instructions, existingID)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", e.Name, err)
			}
			im.exercises[e.ID] = existingID
			im.category[existingID] = e.Category
			im.summary.ExercisesUpdated++
		}
	}
	return nil
}

// resolveExercise maps a snapshot exercise ID to a stored one. IDs not in
// the snapshot must name an existing built-in exercise.
func (im *importer) resolveExercise(ctx context.Context, oldID int64) (int64, models.Category, bool, error) {
	if id, ok := im.exercises[oldID]; ok {
		return id, im.category[id], true, nil
	}

	var category models.Category
	var isCustom bool
	err := im.tx.QueryRowContext(ctx,
		"SELECT category, is_custom FROM exercises WHERE id = ?", oldID).Scan(&category, &isCustom)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && isCustom) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, fmt.Errorf("resolve exercise %d: %w", oldID, err)
	}

	im.exercises[oldID] = oldID
	im.category[oldID] = category
	return oldID, category, true, nil
}

func (im *importer) importWorkouts(ctx context.Context, snap *Snapshot) error {
	im.workouts = make(map[int64]int64, len(snap.Workouts))
	for _, w := range snap.Workouts {
		if err := w.Validate(); err != nil {
			im.reject("workout %d: %v", w.ID, err)
			continue
		}
		w.CreatedAt = im.createdAt(w.CreatedAt)
		id, err := insertWorkout(ctx, im.tx, &w)
		if err != nil {
			return fmt.Errorf("import workout %d: %w", w.ID, err)
		}
		im.workouts[w.ID] = id
		im.summary.Workouts++
	}
	return nil
}

func (im *importer) importWorkoutExercises(ctx context.Context, snap *Snapshot) error {
	im.workoutExercises = make(map[int64]int64, len(snap.WorkoutExercises))
	im.weCategory = make(map[int64]models.Category, len(snap.WorkoutExercises))
	for _, we := range snap.WorkoutExercises {
		workoutID, ok := im.workouts[we.WorkoutID]
		if !ok {
			im.reject("workout exercise %d: unknown workout %d", we.ID, we.WorkoutID)
			continue
		}
		exerciseID, category, ok, err := im.resolveExercise(ctx, we.ExerciseID)
		if err != nil {
			return err
		}
		if !ok {
			im.reject("workout exercise %d: unknown exercise %d", we.ID, we.ExerciseID)
			continue
		}
		if we.OrderIndex < 0 {
			im.reject("workout exercise %d: negative order index", we.ID)
			continue
		}

		id, err := insertWorkoutExercise(ctx, im.tx, &models.WorkoutExercise{
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			OrderIndex: we.OrderIndex,
		})
		if err != nil {
			return fmt.Errorf("import workout exercise %d: %w", we.ID, err)
		}
		im.workoutExercises[we.ID] = id
		im.weCategory[we.ID] = category
		im.summary.WorkoutExercises++
	}
	return nil
}

func (im *importer) importSets(ctx context.Context, snap *Snapshot) error {
	for _, s := range snap.Sets {
		parentID, ok := im.workoutExercises[s.WorkoutExerciseID]
		if !ok {
			im.reject("set %d: unknown workout exercise %d", s.ID, s.WorkoutExerciseID)
			continue
		}
		if err := s.ValidateFor(im.weCategory[s.WorkoutExerciseID]); err != nil {
			im.reject("set %d: %v", s.ID, err)
			continue
		}
		if s.SetNumber < 1 {
			im.reject("set %d: set number must be at least 1", s.ID)
			continue
		}

		s.WorkoutExerciseID = parentID
		if _, err := insertSet(ctx, im.tx, &s); err != nil {
			return fmt.Errorf("import set %d: %w", s.ID, err)
		}
		im.summary.Sets++
	}
	return nil
}

func (im *importer) importTemplates(ctx context.Context, snap *Snapshot) error {
	im.templates = make(map[int64]int64, len(snap.Templates))
	for _, t := range snap.Templates {
		if err := t.Validate(); err != nil {
			im.reject("template %d: %v", t.ID, err)
			continue
		}
		t.CreatedAt = im.createdAt(t.CreatedAt)
		id, err := insertTemplate(ctx, im.tx, &t)
		if err != nil {
			return fmt.Errorf("import template %d: %w", t.ID, err)
		}
		im.templates[t.ID] = id
		im.summary.Templates++
	}
	return nil
}

func (im *importer) importTemplateExercises(ctx context.Context, snap *Snapshot) error {
	for _, te := range snap.TemplateExercises {
		templateID, ok := im.templates[te.TemplateID]
		if !ok {
			im.reject("template exercise %d: unknown template %d", te.ID, te.TemplateID)
			continue
		}
		exerciseID, _, ok, err := im.resolveExercise(ctx, te.ExerciseID)
		if err != nil {
			return err
		}
		if !ok {
			im.reject("template exercise %d: unknown exercise %d", te.ID, te.ExerciseID)
			continue
		}
		if err := te.Validate(); err != nil {
			im.reject("template exercise %d: %v", te.ID, err)
			continue
		}

		te.TemplateID = templateID
		te.ExerciseID = exerciseID
		if _, err := insertTemplateExercise(ctx, im.tx, &te); err != nil {
			return fmt.Errorf("import template exercise %d: %w", te.ID, err)
		}
		im.summary.TemplateExercises++
	}
	return nil
}

func (im *importer) importPersonalRecords(ctx context.Context, snap *Snapshot) error {
	for _, pr := range snap.PersonalRecords {
		exerciseID, _, ok, err := im.resolveExercise(ctx, pr.ExerciseID)
		if err != nil {
			return err
		}
		if !ok {
			im.reject("personal record %d: unknown exercise %d", pr.ID, pr.ExerciseID)
			continue
		}
		if !pr.RecordType.Valid() {
			im.reject("personal record %d: unknown record type %q", pr.ID, pr.RecordType)
			continue
		}
		if pr.Date.IsZero() {
			im.reject("personal record %d: date is required", pr.ID)
			continue
		}

		var workoutID *int64
		if pr.WorkoutID != nil {
			id, ok := im.workouts[*pr.WorkoutID]
			if !ok {
				im.reject("personal record %d: unknown workout %d", pr.ID, *pr.WorkoutID)
				continue
			}
			workoutID = &id
		}

		_, err = im.tx.ExecContext(ctx, `
			INSERT INTO personal_records (exercise_id, record_type, value, date, workout_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, exerciseID, string(pr.RecordType), pr.Value, pr.Date, workoutID, formatTime(im.createdAt(pr.CreatedAt)))
		if err != nil {
			return fmt.Errorf("import personal record %d: %w", pr.ID, err)
		}
		im.summary.PersonalRecords++
	}
	return nil
}

// ExportJSON exports a snapshot as indented JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := d.ExportSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ExportYAML exports a snapshot as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	snap, err := d.ExportSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(snap)
}

// ImportJSON imports a snapshot from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) (*ImportSummary, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportSnapshot(ctx, &snap)
}

// ImportYAML imports a snapshot from YAML bytes.
func (d *DB) ImportYAML(ctx context.Context, data []byte) (*ImportSummary, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return d.ImportSnapshot(ctx, &snap)
}

// ExportMarkdown renders workouts dated on or after since (all workouts
// when since is zero) with their sets, followed by recent personal records.
func (d *DB) ExportMarkdown(ctx context.Context, since models.Date) (string, error) {
	stats, err := d.GetWorkoutStats(ctx)
	if err != nil {
		return "", err
	}

	workouts, err := d.ListWorkouts(ctx, 0, 0)
	if err != nil {
		return "", err
	}

	records, err := d.GetPersonalRecords(ctx, DefaultRecordLimit)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	today := d.today()

	sb.WriteString(fmt.Sprintf("# Workout Log - %s\n\n", today))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", d.now().Format(time.RFC3339)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Workouts: %d (%d this week, %d this month)\n",
		stats.TotalWorkouts, stats.WorkoutsThisWeek, stats.WorkoutsThisMonth))
	sb.WriteString(fmt.Sprintf("- Total volume: %.1f\n", stats.TotalVolume))
	sb.WriteString(fmt.Sprintf("- Average duration: %.0f min\n\n", stats.AverageDuration))

	for _, w := range workouts {
		if !since.IsZero() && w.Date.Before(since) {
			continue
		}

		full, err := d.GetWorkoutWithExercises(ctx, w.ID)
		if err != nil {
			return "", err
		}

		sb.WriteString(fmt.Sprintf("## %s - %s\n\n", full.Date, full.Name))
		if full.Duration != nil {
			sb.WriteString(fmt.Sprintf("Duration: %d min\n\n", *full.Duration))
		}
		if full.Notes != nil && *full.Notes != "" {
			sb.WriteString(*full.Notes + "\n\n")
		}

		for _, ex := range full.Exercises {
			sb.WriteString(fmt.Sprintf("### %s\n\n", ex.Exercise.Name))
			if len(ex.Sets) == 0 {
				sb.WriteString("No sets logged.\n\n")
				continue
			}
			sb.WriteString("| Set | Value | Notes |\n")
			sb.WriteString("|-----|-------|-------|\n")
			for _, s := range ex.Sets {
				notes := ""
				if s.Notes != nil {
					notes = *s.Notes
				}
				sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", s.SetNumber, FormatSet(s), notes))
			}
			sb.WriteString("\n")
		}
	}

	if len(records) > 0 {
		sb.WriteString("## Personal Records\n\n")
		sb.WriteString("| Date | Exercise | Type | Value |\n")
		sb.WriteString("|------|----------|------|-------|\n")
		for _, pr := range records {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %g |\n",
				pr.Date, pr.ExerciseName, pr.RecordType, pr.Value))
		}
	}

	return sb.String(), nil
}

// FormatSet renders the values of a set, e.g. "5 × 100" or "5000 m in 1500 s".
func FormatSet(s models.Set) string {
	var parts []string
	switch {
	case s.Reps != nil && s.Weight != nil:
		parts = append(parts, fmt.Sprintf("%d × %g", *s.Reps, *s.Weight))
	case s.Reps != nil:
		parts = append(parts, fmt.Sprintf("%d reps", *s.Reps))
	case s.Weight != nil:
		parts = append(parts, fmt.Sprintf("%g", *s.Weight))
	}
	if s.Distance != nil {
		parts = append(parts, fmt.Sprintf("%g m", *s.Distance))
	}
	if s.Duration != nil {
		if s.Distance != nil {
			parts = append(parts, "in")
		}
		parts = append(parts, fmt.Sprintf("%d s", *s.Duration))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
