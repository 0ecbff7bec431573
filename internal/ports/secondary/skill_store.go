package secondary

import (
	"context"
	"time"
)

// DefaultStorageKey is the logical key the skill collection is stored under.
const DefaultStorageKey = "skills"

// SkillStore defines the secondary port for skill persistence.
// The whole collection is written and read as one value.
type SkillStore interface {
	// Save replaces the stored collection with records.
	Save(ctx context.Context, records []*SkillRecord) error

	// Load returns the stored collection. found is false when nothing has been
	// saved yet or the stored value could not be parsed.
	Load(ctx context.Context) (records []*SkillRecord, found bool, err error)
}

// SkillRecord represents a skill as stored in persistence.
type SkillRecord struct {
	ID        int64
	Name      string
	Category  string
	Progress  int
	Status    string
	CreatedAt time.Time
}
