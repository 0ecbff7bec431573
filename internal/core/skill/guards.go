package skill

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Field   string
	Reason  string
}

// Error converts the guard result to a ValidationError if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &ValidationError{Field: r.Field, Reason: r.Reason}
}

// AddSkillContext provides context for skill creation guards.
type AddSkillContext struct {
	Name     string
	Category string
}

// UpdateSkillContext provides context for partial update guards.
// Nil fields were not supplied by the caller and are not checked.
type UpdateSkillContext struct {
	Name           *string
	Category       *string
	Status         *string
	Progress       *int
	StrictProgress bool
}

// CanAddSkill evaluates whether a skill can be created.
// Rules:
// - Name must not be blank
// - Category must be known
func CanAddSkill(ctx AddSkillContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Field: "name", Reason: "skill name must not be empty"}
	}

	if !Category(ctx.Category).Valid() {
		return GuardResult{Field: "category", Reason: fmt.Sprintf("unknown category %q", ctx.Category)}
	}

	return GuardResult{Allowed: true}
}

// CanUpdateSkill evaluates whether a partial update can be applied.
// Rules:
// - Name, if given, must not be blank
// - Category and status, if given, must be known
// - Progress, if given, must be within [0, 100] when strict
func CanUpdateSkill(ctx UpdateSkillContext) GuardResult {
	if ctx.Name != nil && strings.TrimSpace(*ctx.Name) == "" {
		return GuardResult{Field: "name", Reason: "skill name must not be empty"}
	}

	if ctx.Category != nil && !Category(*ctx.Category).Valid() {
		return GuardResult{Field: "category", Reason: fmt.Sprintf("unknown category %q", *ctx.Category)}
	}

	if ctx.Status != nil && !Status(*ctx.Status).Valid() {
		return GuardResult{Field: "status", Reason: fmt.Sprintf("unknown status %q", *ctx.Status)}
	}

	if ctx.StrictProgress && ctx.Progress != nil && (*ctx.Progress < MinProgress || *ctx.Progress > MaxProgress) {
		return GuardResult{Field: "progress", Reason: fmt.Sprintf("progress %d outside [%d, %d]", *ctx.Progress, MinProgress, MaxProgress)}
	}

	return GuardResult{Allowed: true}
}

// CanSetStatus evaluates whether a status tag is acceptable.
func CanSetStatus(status string) GuardResult {
	if !Status(status).Valid() {
		return GuardResult{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return GuardResult{Allowed: true}
}
