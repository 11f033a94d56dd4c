// ABOUTME: Template and TemplateExercise models for reusable workout blueprints.
// ABOUTME: Default sets/reps/weight are copied into drafts, never changed by use.
package models

import "time"

// Template is a reusable list of exercises with suggested targets.
type Template struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description *string   `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewTemplate creates a template.
func NewTemplate(name string) *Template {
	return &Template{Name: name}
}

// WithDescription sets the description.
func (t *Template) WithDescription(description string) *Template {
	t.Description = &description
	return t
}

// Validate checks the required fields.
func (t *Template) Validate() error {
	if isBlank(t.Name) {
		return invalid("name", "template name is required")
	}
	return nil
}

// TemplateExercise places an exercise in a template.
type TemplateExercise struct {
	ID            int64    `json:"id" yaml:"id"`
	TemplateID    int64    `json:"template_id" yaml:"template_id"`
	ExerciseID    int64    `json:"exercise_id" yaml:"exercise_id"`
	OrderIndex    int      `json:"order_index" yaml:"order_index"`
	DefaultSets   *int     `json:"default_sets" yaml:"default_sets"`
	DefaultReps   *int     `json:"default_reps" yaml:"default_reps"`
	DefaultWeight *float64 `json:"default_weight" yaml:"default_weight"`
}

// Validate checks order and default targets.
func (te *TemplateExercise) Validate() error {
	if te.OrderIndex < 0 {
		return invalid("order_index", "must not be negative")
	}
	if te.DefaultSets != nil && *te.DefaultSets < 0 {
		return invalid("default_sets", "must not be negative")
	}
	if te.DefaultReps != nil && *te.DefaultReps < 0 {
		return invalid("default_reps", "must not be negative")
	}
	if te.DefaultWeight != nil && *te.DefaultWeight < 0 {
		return invalid("default_weight", "must not be negative")
	}
	return nil
}

// TemplateWithExercises is a template with its exercises.
type TemplateWithExercises struct {
	Template  `yaml:",inline"`
	Exercises []TemplateExerciseDetail `json:"exercises" yaml:"exercises"`
}

// TemplateExerciseDetail is a template entry with the exercise itself.
type TemplateExerciseDetail struct {
	TemplateExercise `yaml:",inline"`
	Exercise         Exercise `json:"exercise" yaml:"exercise"`
}
