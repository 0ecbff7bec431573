package skill

import (
	"strings"
	"time"
)

// Progress bounds.
const (
	MinProgress = 0
	MaxProgress = 100
)

// Skill is one tracked learning goal.
type Skill struct {
	ID        int64
	Name      string
	Category  Category
	Progress  int
	Status    Status
	CreatedAt time.Time
}

// New builds a freshly planned skill. The caller has already run CanAddSkill.
func New(id int64, name string, category Category, now time.Time) Skill {
	return Skill{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Category:  category,
		Progress:  MinProgress,
		Status:    InitialStatus(),
		CreatedAt: Timestamp(now),
	}
}

// InitialStatus returns the status assigned to new skills.
func InitialStatus() Status {
	return StatusPlanned
}

// ClampProgress bounds p to [MinProgress, MaxProgress].
func ClampProgress(p int) int {
	if p < MinProgress {
		return MinProgress
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}

// Timestamp normalizes t to the millisecond UTC precision the wire format keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NextID allocates an id from the creation time, falling back to lastID+1
// when the clock has not moved past the most recent allocation.
func NextID(now time.Time, lastID int64) int64 {
	id := now.UnixMilli()
	if id <= lastID {
		return lastID + 1
	}
	return id
}

// MaxID returns the largest id in records, or 0 when empty.
func MaxID(records []Skill) int64 {
	var highest int64
	for _, r := range records {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest
}

// IndexOf returns the position of id in records, or -1.
func IndexOf(records []Skill, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
