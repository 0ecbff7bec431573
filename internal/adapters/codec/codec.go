// Package codec owns the stored representation of the skill collection.
// Every SkillStore adapter serializes through it so backends stay interchangeable.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/skilltrack/internal/core/skill"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// ErrMalformed marks stored bytes that cannot be read back as a collection.
var ErrMalformed = errors.New("malformed skill data")

type wireSkill struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Progress  int    `json:"progress"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Encode serializes records as a JSON array.
func Encode(records []*secondary.SkillRecord) ([]byte, error) {
	out := make([]wireSkill, 0, len(records))
	for _, r := range records {
		out = append(out, wireSkill{
			ID:        r.ID,
			Name:      r.Name,
			Category:  r.Category,
			Progress:  r.Progress,
			Status:    r.Status,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	return data, nil
}

// UntitledName replaces a blank stored name.
const UntitledName = "Untitled skill"

// Decode parses a JSON array written by Encode. Only unreadable bytes, a
// non-array payload or an unparseable createdAt yield ErrMalformed. Records
// that break a field invariant are repaired so no stored skill is dropped:
// progress is clamped, unknown categories become "other", unknown statuses
// become "planned", blank names become UntitledName and duplicate ids are
// renumbered past the highest id.
func Decode(data []byte) ([]*secondary.SkillRecord, error) {
	var in []wireSkill
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if in == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	var highest int64
	for _, w := range in {
		if w.ID > highest {
			highest = w.ID
		}
	}

	seen := make(map[int64]bool, len(in))
	records := make([]*secondary.SkillRecord, 0, len(in))
	for i, w := range in {
		createdAt, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d createdAt: %v", ErrMalformed, i, err)
		}

		id := w.ID
		if seen[id] {
			highest++
			id = highest
		}
		seen[id] = true

		records = append(records, &secondary.SkillRecord{
			ID:        id,
			Name:      repairName(w.Name),
			Category:  string(repairCategory(w.Category)),
			Progress:  skill.ClampProgress(w.Progress),
			Status:    string(repairStatus(w.Status)),
			CreatedAt: createdAt.UTC(),
		})
	}

	return records, nil
}

func repairName(name string) string {
	if strings.TrimSpace(name) == "" {
		return UntitledName
	}
	return name
}

func repairCategory(raw string) skill.Category {
	if c := skill.Category(raw); c.Valid() {
		return c
	}
	return skill.CategoryOther
}

func repairStatus(raw string) skill.Status {
	if st := skill.Status(raw); st.Valid() {
		return st
	}
	return skill.StatusPlanned
}
