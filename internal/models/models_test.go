// ABOUTME: Tests for Exercise, Date and patch types.
// ABOUTME: Covers category parsing, date codecs and Opt presence semantics.
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewExercise(t *testing.T) {
	e := NewExercise("Bench Press", CategoryStrength, "Chest", " Triceps ").WithEquipment("Barbell")

	assert.True(t, e.IsCustom)
	assert.Equal(t, "Chest, Triceps ", e.MuscleGroups)
	assert.Equal(t, []string{"Chest", "Triceps"}, e.MuscleGroupList())
	require.NotNil(t, e.Equipment)
	assert.Equal(t, "Barbell", *e.Equipment)
	assert.NoError(t, e.Validate())
}

func TestExerciseValidate(t *testing.T) {
	assert.ErrorIs(t, NewExercise("", CategoryCardio, "Legs").Validate(), ErrValidation)
	assert.ErrorIs(t, NewExercise("Swim", Category("Water"), "Full Body").Validate(), ErrValidation)
	assert.ErrorIs(t, NewExercise("Swim", CategoryCardio, " , ").Validate(), ErrValidation)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("cardio")
	assert.True(t, ok)
	assert.Equal(t, CategoryCardio, c)

	_, ok = ParseCategory("yoga")
	assert.False(t, ok)
}

func TestRecordTypeValid(t *testing.T) {
	for _, rt := range AllRecordTypes {
		assert.True(t, rt.Valid(), rt)
	}
	assert.False(t, RecordType("speed").Valid())
}

func TestDateBoundaries(t *testing.T) {
	// 2025-06-18 is a Wednesday.
	d := NewDate(2025, time.June, 18)

	assert.Equal(t, "2025-06-15", d.StartOfWeek().String())
	assert.Equal(t, "2025-06-01", d.StartOfMonth().String())

	sunday := NewDate(2025, time.June, 15)
	assert.True(t, sunday.StartOfWeek().Equal(sunday), "a Sunday starts its own week")
	assert.Equal(t, "2025-05-31", d.AddDays(-18).String())
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	late := time.Date(2025, 1, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-01-10", DateOf(late).String())
}

func TestDateCodecs(t *testing.T) {
	d := NewDate(2024, time.February, 29)

	b, err := json.Marshal(struct {
		Date Date `json:"date"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29"}`, string(b))

	var decoded struct {
		Date Date `json:"date" yaml:"date"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded.Date.Equal(d))

	y, err := yaml.Marshal(decoded)
	require.NoError(t, err)
	assert.Contains(t, string(y), "2024-02-29")

	var scanned Date
	require.NoError(t, scanned.Scan("2024-02-29"))
	assert.True(t, scanned.Equal(d))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", v)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestOptPresence(t *testing.T) {
	var absent Opt[int]
	assert.False(t, absent.Present())
	assert.Nil(t, absent.Ptr())

	cleared := Null[int]()
	assert.True(t, cleared.Present())
	assert.True(t, cleared.IsNull())

	set := Some(12)
	v, ok := set.Get()
	assert.True(t, ok)
	assert.Equal(t, 12, v)
	assert.False(t, set.IsNull())

	assert.False(t, FromPtr[int](nil).Present())
	assert.True(t, FromPtr(&v).Present())
}

func TestSetPatchApply(t *testing.T) {
	base := LoadSet(5, 100)
	notes := "easy"
	base.Notes = &notes

	patched := SetPatch{
		Weight: Some(110.0),
		Notes:  Null[string](),
	}.Apply(base)

	require.NotNil(t, patched.Weight)
	assert.Equal(t, 110.0, *patched.Weight)
	assert.Equal(t, 5, *patched.Reps, "absent fields are kept")
	assert.Nil(t, patched.Notes, "null fields are cleared")
	assert.Equal(t, 100.0, *base.Weight, "the original set is not modified")
}

func TestPatchValidate(t *testing.T) {
	assert.True(t, ExercisePatch{}.IsEmpty())
	assert.ErrorIs(t, ExercisePatch{Name: Null[string]()}.Validate(), ErrValidation)
	assert.ErrorIs(t, ExercisePatch{Category: Some(Category("Dance"))}.Validate(), ErrValidation)
	assert.NoError(t, ExercisePatch{Equipment: Null[string]()}.Validate())

	assert.ErrorIs(t, WorkoutPatch{Date: Null[Date]()}.Validate(), ErrValidation)
	assert.ErrorIs(t, WorkoutPatch{Duration: Some(-3)}.Validate(), ErrValidation)
	assert.NoError(t, WorkoutPatch{Duration: Null[int]()}.Validate())

	assert.ErrorIs(t, TemplatePatch{Name: Some("")}.Validate(), ErrValidation)
}

func TestProgressRecent(t *testing.T) {
	p := &ExerciseProgress{ProgressData: []ProgressPoint{
		{Date: NewDate(2025, 1, 1)},
		{Date: NewDate(2025, 1, 2)},
		{Date: NewDate(2025, 1, 3)},
	}}

	recent := p.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "2025-01-02", recent[0].Date.String())
	assert.Len(t, p.Recent(10), 3)
}
