// ABOUTME: Optional field wrapper and patch types for partial updates.
// ABOUTME: Distinguishes "leave unchanged" from "set to NULL" from "set to value".
package models

// Opt is one field of a partial update. The zero value leaves the column
// untouched, Some assigns a value and Null clears it.
type Opt[T any] struct {
	present bool
	value   *T
}

// Some returns an Opt that assigns v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{present: true, value: &v}
}

// Null returns an Opt that clears the field.
func Null[T any]() Opt[T] {
	return Opt[T]{present: true}
}

// FromPtr returns Some(*p) when p is non-nil, and an absent Opt otherwise.
func FromPtr[T any](p *T) Opt[T] {
	if p == nil {
		return Opt[T]{}
	}
	return Some(*p)
}

// Present reports whether the field takes part in the update.
func (o Opt[T]) Present() bool { return o.present }

// IsNull reports whether the field is explicitly cleared.
func (o Opt[T]) IsNull() bool { return o.present && o.value == nil }

// Ptr returns the assigned value, or nil when absent or cleared.
func (o Opt[T]) Ptr() *T { return o.value }

// Get returns the assigned value and whether one is set.
func (o Opt[T]) Get() (T, bool) {
	if o.value == nil {
		var zero T
		return zero, false
	}
	return *o.value, true
}

// apply writes the option onto a nullable field.
func (o Opt[T]) apply(dst **T) {
	if o.present {
		*dst = o.value
	}
}

// ExercisePatch updates a custom exercise. Identity fields and the custom
// flag cannot be patched.
type ExercisePatch struct {
	Name         Opt[string]
	Category     Opt[Category]
	MuscleGroups Opt[string]
	Equipment    Opt[string]
	Instructions Opt[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p ExercisePatch) IsEmpty() bool {
	return !p.Name.Present() && !p.Category.Present() && !p.MuscleGroups.Present() &&
		!p.Equipment.Present() && !p.Instructions.Present()
}

// Validate checks the fields that cannot be cleared.
func (p ExercisePatch) Validate() error {
	if p.Name.Present() {
		if v, ok := p.Name.Get(); !ok || isBlank(v) {
			return invalid("name", "exercise name is required")
		}
	}
	if p.Category.Present() {
		if v, ok := p.Category.Get(); !ok || !v.Valid() {
			return invalid("category", "unknown category %q", v)
		}
	}
	if p.MuscleGroups.Present() {
		if v, ok := p.MuscleGroups.Get(); !ok || isBlank(v) {
			return invalid("muscle_groups", "at least one muscle group is required")
		}
	}
	return nil
}

// WorkoutPatch updates a workout.
type WorkoutPatch struct {
	Name     Opt[string]
	Date     Opt[Date]
	Duration Opt[int]
	Notes    Opt[string]
}

func (p WorkoutPatch) IsEmpty() bool {
	return !p.Name.Present() && !p.Date.Present() && !p.Duration.Present() && !p.Notes.Present()
}

func (p WorkoutPatch) Validate() error {
	if p.Name.Present() {
		if v, ok := p.Name.Get(); !ok || isBlank(v) {
			return invalid("name", "workout name is required")
		}
	}
	if p.Date.Present() {
		if v, ok := p.Date.Get(); !ok || v.IsZero() {
			return invalid("date", "workout date is required")
		}
	}
	if v, ok := p.Duration.Get(); ok && v < 0 {
		return invalid("duration", "must not be negative")
	}
	return nil
}

// SetPatch updates a logged set. The parent and the set number are fixed.
type SetPatch struct {
	Reps     Opt[int]
	Weight   Opt[float64]
	Distance Opt[float64]
	Duration Opt[int]
	RestTime Opt[int]
	Notes    Opt[string]
}

func (p SetPatch) IsEmpty() bool {
	return !p.Reps.Present() && !p.Weight.Present() && !p.Distance.Present() &&
		!p.Duration.Present() && !p.RestTime.Present() && !p.Notes.Present()
}

// Apply returns a copy of s with the patch applied.
func (p SetPatch) Apply(s Set) Set {
	p.Reps.apply(&s.Reps)
	p.Weight.apply(&s.Weight)
	p.Distance.apply(&s.Distance)
	p.Duration.apply(&s.Duration)
	p.RestTime.apply(&s.RestTime)
	p.Notes.apply(&s.Notes)
	return s
}

// TemplatePatch updates a template.
type TemplatePatch struct {
	Name        Opt[string]
	Description Opt[string]
}

func (p TemplatePatch) IsEmpty() bool {
	return !p.Name.Present() && !p.Description.Present()
}

func (p TemplatePatch) Validate() error {
	if p.Name.Present() {
		if v, ok := p.Name.Get(); !ok || isBlank(v) {
			return invalid("name", "template name is required")
		}
	}
	return nil
}
