// ABOUTME: Error taxonomy for the storage layer.
// ABOUTME: NotFound, Validation, StorageUnavailable and Constraint errors.
package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

var (
	// ErrNotFound is returned by getters when no row matches the id.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable is returned by every operation while the
	// database is not initialized or failed to initialize.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraint is matched by every *ConstraintError.
	ErrConstraint = errors.New("constraint violation")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = models.ErrValidation
)

// ValidationError reports rejected input; see models.ValidationError.
type ValidationError = models.ValidationError

// ConstraintError reports a mutation refused to protect referential integrity.
type ConstraintError struct {
	Entity string
	ID     int64
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

// Is makes errors.Is(err, ErrConstraint) succeed.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
