// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/skilltrack/internal/core/skill"
	"github.com/example/skilltrack/internal/ports/primary"
)

const (
	barWidth  = 20
	dateFmt   = "2006-01-02"
	separator = "────────────────────────────────────────────────────────────────"
)

// SkillAdapter is a thin adapter that translates CLI operations to SkillService calls.
// It depends only on the SkillService interface, enabling easy testing with mocks.
type SkillAdapter struct {
	service primary.SkillService
	out     io.Writer
}

// NewSkillAdapter creates a new SkillAdapter with the given service.
func NewSkillAdapter(service primary.SkillService, out io.Writer) *SkillAdapter {
	return &SkillAdapter{
		service: service,
		out:     out,
	}
}

// Add creates a new skill.
func (a *SkillAdapter) Add(ctx context.Context, name, category string) error {
	created, err := a.service.AddSkill(ctx, primary.AddSkillRequest{
		Name:     name,
		Category: category,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added skill %d: %s (%s)\n", created.ID, created.Name, created.CategoryLabel)
	return nil
}

// List prints skills in insertion order.
func (a *SkillAdapter) List(ctx context.Context, filters primary.SkillFilters) error {
	skills, err := a.service.ListSkills(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	if len(skills) == 0 {
		if filters.Status == "" && filters.Category == "" {
			fmt.Fprintln(a.out, "No skills added yet. Start by adding your first learning goal:")
			fmt.Fprintln(a.out, "  skilltrack add \"<name>\" --category programming")
		} else {
			fmt.Fprintln(a.out, "No skills match the given filters")
		}
		return nil
	}

	fmt.Fprintf(a.out, "\n%-15s %-12s %-13s %-25s %s\n", "ID", "CATEGORY", "STATUS", "PROGRESS", "NAME")
	fmt.Fprintln(a.out, separator)
	for _, s := range skills {
		fmt.Fprintf(a.out, "%-15d %-12s %s %s %s\n",
			s.ID, s.CategoryLabel, statusBadge(s.Status, s.StatusLabel), progressBar(s.Progress, s.Level), s.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single skill.
func (a *SkillAdapter) Show(ctx context.Context, id int64) (*primary.Skill, error) {
	s, err := a.service.GetSkill(ctx, id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nSkill:    %d\n", s.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", s.Name)
	fmt.Fprintf(a.out, "Category: %s\n", s.CategoryLabel)
	fmt.Fprintf(a.out, "Status:   %s\n", s.StatusLabel)
	fmt.Fprintf(a.out, "Progress: %d%% (%s)\n", s.Progress, s.Level)
	fmt.Fprintf(a.out, "Created:  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(a.out)

	return s, nil
}

// Edit applies a partial update. At least one field must be supplied.
func (a *SkillAdapter) Edit(ctx context.Context, req primary.UpdateSkillRequest) error {
	if req.Name == nil && req.Category == nil && req.Progress == nil && req.Status == nil {
		return fmt.Errorf("must specify at least one of --name, --category, --progress or --status")
	}

	updated, err := a.service.UpdateSkill(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Skill %d updated: %s [%s, %d%%]\n", updated.ID, updated.Name, updated.StatusLabel, updated.Progress)
	return nil
}

// SetStatus changes a skill's status.
func (a *SkillAdapter) SetStatus(ctx context.Context, id int64, status string) error {
	updated, err := a.service.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Skill %d (%s) is now %s\n", updated.ID, updated.Name, updated.StatusLabel)
	return nil
}

// Delete removes a skill. Deleting an unknown id reports that nothing changed.
func (a *SkillAdapter) Delete(ctx context.Context, id int64) error {
	// Get skill details before deleting (for output)
	existing, err := a.service.GetSkill(ctx, id)
	if err != nil && !errors.Is(err, skill.ErrNotFound) {
		return fmt.Errorf("failed to get skill: %w", err)
	}

	if err := a.service.DeleteSkill(ctx, id); err != nil {
		return err
	}

	if existing == nil {
		fmt.Fprintf(a.out, "Skill %d not found, nothing deleted\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Deleted skill %d: %s\n", existing.ID, existing.Name)
	return nil
}

// Stats prints aggregate counts.
func (a *SkillAdapter) Stats(ctx context.Context) error {
	stats, err := a.service.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	fmt.Fprintf(a.out, "Total skills:     %d\n", stats.Total)
	fmt.Fprintf(a.out, "Completed:        %d\n", stats.Completed)
	fmt.Fprintf(a.out, "In progress:      %d\n", stats.InProgress)
	fmt.Fprintf(a.out, "Planned:          %d\n", stats.Planned)
	fmt.Fprintf(a.out, "Completion rate:  %d%%\n", stats.CompletionRate)
	return nil
}

// Milestones prints the most recent completed skills.
func (a *SkillAdapter) Milestones(ctx context.Context, limit int) error {
	milestones, err := a.service.Milestones(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to compute milestones: %w", err)
	}

	if len(milestones) == 0 {
		fmt.Fprintln(a.out, "No completed skills yet. Keep learning!")
		return nil
	}

	check := color.New(color.FgGreen).Sprint("✓")
	for _, m := range milestones {
		fmt.Fprintf(a.out, "%s %s\n", check, m.Name)
		fmt.Fprintf(a.out, "    %s • added %s\n", m.CategoryLabel, m.CreatedAt.Local().Format(dateFmt))
	}
	return nil
}

// Reset replaces all skills with the sample set.
func (a *SkillAdapter) Reset(ctx context.Context) error {
	if err := a.service.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Skills reset to the sample set")
	return nil
}

func statusBadge(status, label string) string {
	padded := fmt.Sprintf("%-13s", label)
	switch skill.Status(status) {
	case skill.StatusCompleted:
		return color.New(color.FgGreen).Sprint(padded)
	case skill.StatusInProgress:
		return color.New(color.FgYellow).Sprint(padded)
	default:
		return color.New(color.FgCyan).Sprint(padded)
	}
}

func progressBar(progress int, level string) string {
	filled := skill.ClampProgress(progress) * barWidth / skill.MaxProgress
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var c *color.Color
	switch skill.ProgressLevel(level) {
	case skill.LevelExpert:
		c = color.New(color.FgGreen)
	case skill.LevelAdvanced:
		c = color.New(color.FgBlue)
	case skill.LevelIntermediate:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	return fmt.Sprintf("%s %3d%%", c.Sprint(bar), progress)
}
