// Package skill contains the pure business logic for skill records.
// This is part of the Functional Core - no I/O, only pure functions.
package skill

import "fmt"

// Category classifies what kind of skill is being learned.
type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryDesign      Category = "design"
	CategoryLanguage    Category = "language"
	CategoryBusiness    Category = "business"
	CategoryOther       Category = "other"
)

// Status is the lifecycle stage of a skill.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ProgressLevel buckets a progress percentage for display.
type ProgressLevel string

const (
	LevelBeginner     ProgressLevel = "beginner"
	LevelIntermediate ProgressLevel = "intermediate"
	LevelAdvanced     ProgressLevel = "advanced"
	LevelExpert       ProgressLevel = "expert"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProgramming,
	CategoryDesign,
	CategoryLanguage,
	CategoryBusiness,
	CategoryOther,
}

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPlanned,
	StatusInProgress,
	StatusCompleted,
}

var categoryLabels = map[Category]string{
	CategoryProgramming: "Programming",
	CategoryDesign:      "Design",
	CategoryLanguage:    "Language",
	CategoryBusiness:    "Business",
	CategoryOther:       "Other",
}

var statusLabels = map[Status]string{
	StatusPlanned:    "Planned",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable name for c.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable name for s.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusPlanned]
}

// ParseCategory converts a tag into a Category.
func ParseCategory(tag string) (Category, error) {
	c := Category(tag)
	if !c.Valid() {
		return "", &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("unknown category %q (expected one of %v)", tag, Categories),
		}
	}
	return c, nil
}

// ParseStatus converts a tag into a Status.
func ParseStatus(tag string) (Status, error) {
	s := Status(tag)
	if !s.Valid() {
		return "", &ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("unknown status %q (expected one of %v)", tag, Statuses),
		}
	}
	return s, nil
}

// LevelFor returns the progress level bucket for a percentage.
func LevelFor(progress int) ProgressLevel {
	switch {
	case progress < 25:
		return LevelBeginner
	case progress < 50:
		return LevelIntermediate
	case progress < 75:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}
