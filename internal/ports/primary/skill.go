package primary

import (
	"context"
	"time"
)

// SkillService defines the primary port for skill operations.
type SkillService interface {
	// Bootstrap loads the stored collection, seeding sample skills on first run.
	Bootstrap(ctx context.Context) error

	// AddSkill creates a planned skill with zero progress.
	AddSkill(ctx context.Context, req AddSkillRequest) (*Skill, error)

	// UpdateSkill applies the supplied fields to an existing skill.
	UpdateSkill(ctx context.Context, req UpdateSkillRequest) (*Skill, error)

	// SetStatus changes only the status of a skill.
	SetStatus(ctx context.Context, id int64, status string) (*Skill, error)

	// DeleteSkill removes a skill. Unknown ids are ignored.
	DeleteSkill(ctx context.Context, id int64) error

	// GetSkill retrieves a skill by ID.
	GetSkill(ctx context.Context, id int64) (*Skill, error)

	// ListSkills returns all skills in insertion order.
	ListSkills(ctx context.Context, filters SkillFilters) ([]*Skill, error)

	// Stats returns aggregate counts over all skills.
	Stats(ctx context.Context) (*Stats, error)

	// Milestones returns the most recently created completed skills.
	// A non-positive limit uses the configured default.
	Milestones(ctx context.Context, limit int) ([]*Skill, error)

	// Reset replaces all skills with the sample collection.
	Reset(ctx context.Context) error
}

// AddSkillRequest contains parameters for adding a skill.
type AddSkillRequest struct {
	Name     string
	Category string
}

// UpdateSkillRequest contains parameters for a partial update.
// Nil fields are left unchanged.
type UpdateSkillRequest struct {
	ID       int64
	Name     *string
	Category *string
	Progress *int
	Status   *string
}

// SkillFilters narrows ListSkills. Empty fields match everything.
type SkillFilters struct {
	Status   string
	Category string
}

// Skill represents a skill entity at the port boundary.
type Skill struct {
	ID            int64
	Name          string
	Category      string
	CategoryLabel string
	Progress      int
	Level         string
	Status        string
	StatusLabel   string
	CreatedAt     time.Time
}

// Stats represents the aggregate view at the port boundary.
type Stats struct {
	Total          int
	Completed      int
	InProgress     int
	Planned        int
	CompletionRate int
}
