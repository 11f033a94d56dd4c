// ABOUTME: Personal record tracking and listing.
// ABOUTME: A record is appended only when a value beats the previous maximum.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

// DefaultRecordLimit is the number of records GetPersonalRecords returns
// when no limit is given.
const DefaultRecordLimit = 10

// CheckAndCreateRecord stores a personal record when value is strictly
// greater than every earlier record of the same exercise and type. A pair
// with no records has a maximum of zero, so ties and non-positive first
// values are not records. workoutID may be nil; a zero date means today.
func (d *DB) CheckAndCreateRecord(ctx context.Context, exerciseID int64, recordType models.RecordType, value float64, workoutID *int64, date models.Date) (bool, error) {
	conn, err := d.conn()
	if err != nil {
		return false, err
	}
	if date.IsZero() {
		date = d.today()
	}
	pr := &models.PersonalRecord{
		ExerciseID: exerciseID,
		RecordType: recordType,
		Value:      value,
		Date:       date,
		WorkoutID:  workoutID,
		CreatedAt:  d.stamp(),
	}
	return recordIfHigher(ctx, conn, pr)
}

// recordIfHigher inserts pr with a single conditional statement and sets its
// ID when it is a new maximum.
func recordIfHigher(ctx context.Context, q querier, pr *models.PersonalRecord) (bool, error) {
	if !pr.RecordType.Valid() {
		return false, &ValidationError{Field: "record_type", Message: fmt.Sprintf("unknown record type %q", pr.RecordType)}
	}
	if _, err := exerciseCategory(ctx, q, pr.ExerciseID); err != nil {
		return false, err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO personal_records (exercise_id, record_type, value, date, workout_id, created_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE ? > (
			SELECT COALESCE(MAX(value), 0) FROM personal_records
			WHERE exercise_id = ? AND record_type = ?
		)
	`,
		pr.ExerciseID, string(pr.RecordType), pr.Value, pr.Date, pr.WorkoutID, formatTime(pr.CreatedAt),
		pr.Value,
		pr.ExerciseID, string(pr.RecordType),
	)
	if err != nil {
		return false, fmt.Errorf("check personal record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check personal record: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("check personal record: %w", err)
	}
	pr.ID = id
	return true, nil
}

// GetPersonalRecords returns the most recently set records with their
// exercise names. A limit of zero or less uses DefaultRecordLimit.
func (d *DB) GetPersonalRecords(ctx context.Context, limit int) ([]*models.PersonalRecord, error) {
	conn, err := d.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecordLimit
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT pr.id, pr.exercise_id, e.name, pr.record_type, pr.value, pr.date, pr.workout_id, pr.created_at
		FROM personal_records pr
		JOIN exercises e ON e.id = pr.exercise_id
		ORDER BY pr.created_at DESC, pr.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get personal records: %w", err)
	}
	defer rows.Close()

	var records []*models.PersonalRecord
	for rows.Next() {
		var pr models.PersonalRecord
		var createdAt string
		err := rows.Scan(
			&pr.ID, &pr.ExerciseID, &pr.ExerciseName, &pr.RecordType,
			&pr.Value, &pr.Date, &pr.WorkoutID, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		pr.CreatedAt = parseTime(createdAt)
		records = append(records, &pr)
	}
	return records, rows.Err()
}
