// ABOUTME: Exercise model and Category enum.
// ABOUTME: Built-in exercises are seeded; custom ones are user-created.
package models

import (
	"strings"
	"time"
)

// Category groups exercises and decides which set values apply.
type Category string

const (
	CategoryStrength    Category = "Strength"
	CategoryCardio      Category = "Cardio"
	CategoryFlexibility Category = "Flexibility"
	CategorySports      Category = "Sports"
)

// AllCategories lists every valid category.
var AllCategories = []Category{
	CategoryStrength, CategoryCardio, CategoryFlexibility, CategorySports,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, known := range AllCategories {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return "", false
}

// Exercise is a named movement or activity.
type Exercise struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Category     Category  `json:"category" yaml:"category"`
	MuscleGroups string    `json:"muscle_groups" yaml:"muscle_groups"`
	Equipment    *string   `json:"equipment" yaml:"equipment"`
	Instructions *string   `json:"instructions" yaml:"instructions"`
	IsCustom     bool      `json:"is_custom" yaml:"is_custom"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// NewExercise creates a custom exercise targeting the given muscle groups.
func NewExercise(name string, category Category, muscleGroups ...string) *Exercise {
	return &Exercise{
		Name:         name,
		Category:     category,
		MuscleGroups: strings.Join(muscleGroups, ","),
		IsCustom:     true,
	}
}

// WithEquipment sets the equipment used.
func (e *Exercise) WithEquipment(equipment string) *Exercise {
	e.Equipment = &equipment
	return e
}

// WithInstructions sets how-to text.
func (e *Exercise) WithInstructions(instructions string) *Exercise {
	e.Instructions = &instructions
	return e
}

// MuscleGroupList splits MuscleGroups into trimmed, non-empty tags.
func (e *Exercise) MuscleGroupList() []string {
	var groups []string
	for _, g := range strings.Split(e.MuscleGroups, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// Validate checks the required fields.
func (e *Exercise) Validate() error {
	if isBlank(e.Name) {
		return invalid("name", "exercise name is required")
	}
	if !e.Category.Valid() {
		return invalid("category", "unknown category %q", e.Category)
	}
	if len(e.MuscleGroupList()) == 0 {
		return invalid("muscle_groups", "at least one muscle group is required")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
