// ABOUTME: Category-dependent set shapes and set validation.
// ABOUTME: Strength sets carry reps/weight, cardio sets distance/duration.
package models

// SetShape is the set of value fields a category allows.
type SetShape int

const (
	// ShapeFree allows any subset of values (flexibility, sports).
	ShapeFree SetShape = iota
	// ShapeLoad allows reps and weight.
	ShapeLoad
	// ShapeCardio allows distance and duration.
	ShapeCardio
)

func (s SetShape) String() string {
	switch s {
	case ShapeLoad:
		return "reps/weight"
	case ShapeCardio:
		return "distance/duration"
	default:
		return "free"
	}
}

// ShapeFor returns the set shape of exercises in category c.
func ShapeFor(c Category) SetShape {
	switch c {
	case CategoryStrength:
		return ShapeLoad
	case CategoryCardio:
		return ShapeCardio
	default:
		return ShapeFree
	}
}

// ValidateFor checks s against the shape of its parent exercise's category.
func (s Set) ValidateFor(c Category) error {
	if s.Reps != nil && *s.Reps < 0 {
		return invalid("reps", "must not be negative")
	}
	if s.Weight != nil && *s.Weight < 0 {
		return invalid("weight", "must not be negative")
	}
	if s.Distance != nil && *s.Distance < 0 {
		return invalid("distance", "must not be negative")
	}
	if s.Duration != nil && *s.Duration < 0 {
		return invalid("duration", "must not be negative")
	}
	if s.RestTime != nil && *s.RestTime < 0 {
		return invalid("rest_time", "must not be negative")
	}

	switch ShapeFor(c) {
	case ShapeLoad:
		if s.Distance != nil || s.Duration != nil {
			return invalid("set", "%s sets take reps and weight, not distance or duration", c)
		}
	case ShapeCardio:
		if s.Reps != nil || s.Weight != nil {
			return invalid("set", "%s sets take distance and duration, not reps or weight", c)
		}
	}
	return nil
}
