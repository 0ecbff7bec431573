package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/example/skilltrack/internal/core/skill"
	"github.com/example/skilltrack/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockSkillService implements primary.SkillService for testing
type mockSkillService struct {
	addSkillFn    func(ctx context.Context, req primary.AddSkillRequest) (*primary.Skill, error)
	updateSkillFn func(ctx context.Context, req primary.UpdateSkillRequest) (*primary.Skill, error)
	setStatusFn   func(ctx context.Context, id int64, status string) (*primary.Skill, error)
	deleteSkillFn func(ctx context.Context, id int64) error
	getSkillFn    func(ctx context.Context, id int64) (*primary.Skill, error)
	listSkillsFn  func(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error)
	statsFn       func(ctx context.Context) (*primary.Stats, error)
	milestonesFn  func(ctx context.Context, limit int) ([]*primary.Skill, error)
	resetFn       func(ctx context.Context) error

	// Track calls for verification
	lastAddReq    primary.AddSkillRequest
	lastUpdateReq primary.UpdateSkillRequest
	deleteCalls   []int64
	lastLimit     int
	updateCalled  bool
}

func (m *mockSkillService) Bootstrap(ctx context.Context) error { return nil }

func (m *mockSkillService) AddSkill(ctx context.Context, req primary.AddSkillRequest) (*primary.Skill, error) {
	m.lastAddReq = req
	if m.addSkillFn != nil {
		return m.addSkillFn(ctx, req)
	}
	return &primary.Skill{ID: 1700000000000, Name: req.Name, Category: req.Category, CategoryLabel: "Programming"}, nil
}

func (m *mockSkillService) UpdateSkill(ctx context.Context, req primary.UpdateSkillRequest) (*primary.Skill, error) {
	m.lastUpdateReq = req
	m.updateCalled = true
	if m.updateSkillFn != nil {
		return m.updateSkillFn(ctx, req)
	}
	return &primary.Skill{ID: req.ID, Name: "Go", StatusLabel: "In Progress", Progress: 40}, nil
}

func (m *mockSkillService) SetStatus(ctx context.Context, id int64, status string) (*primary.Skill, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status)
	}
	return &primary.Skill{ID: id, Name: "Go", Status: status, StatusLabel: "Completed"}, nil
}

func (m *mockSkillService) DeleteSkill(ctx context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteSkillFn != nil {
		return m.deleteSkillFn(ctx, id)
	}
	return nil
}

func (m *mockSkillService) GetSkill(ctx context.Context, id int64) (*primary.Skill, error) {
	if m.getSkillFn != nil {
		return m.getSkillFn(ctx, id)
	}
	return &primary.Skill{ID: id, Name: "Go", CategoryLabel: "Programming", StatusLabel: "Planned", Level: "beginner"}, nil
}

func (m *mockSkillService) ListSkills(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error) {
	if m.listSkillsFn != nil {
		return m.listSkillsFn(ctx, filters)
	}
	return []*primary.Skill{}, nil
}

func (m *mockSkillService) Stats(ctx context.Context) (*primary.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &primary.Stats{}, nil
}

func (m *mockSkillService) Milestones(ctx context.Context, limit int) ([]*primary.Skill, error) {
	m.lastLimit = limit
	if m.milestonesFn != nil {
		return m.milestonesFn(ctx, limit)
	}
	return []*primary.Skill{}, nil
}

func (m *mockSkillService) Reset(ctx context.Context) error {
	if m.resetFn != nil {
		return m.resetFn(ctx)
	}
	return nil
}

func newTestAdapter() (*SkillAdapter, *mockSkillService, *bytes.Buffer) {
	svc := &mockSkillService{}
	out := &bytes.Buffer{}
	return NewSkillAdapter(svc, out), svc, out
}

// ============================================================================
// Add Tests
// ============================================================================

func TestSkillAdapter_Add(t *testing.T) {
	adapter, svc, out := newTestAdapter()

	if err := adapter.Add(context.Background(), "Go", "programming"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if svc.lastAddReq.Name != "Go" || svc.lastAddReq.Category != "programming" {
		t.Errorf("unexpected request %+v", svc.lastAddReq)
	}
	if !strings.Contains(out.String(), "✓ Added skill 1700000000000: Go (Programming)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_AddValidationError(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	svc.addSkillFn = func(ctx context.Context, req primary.AddSkillRequest) (*primary.Skill, error) {
		return nil, &skill.ValidationError{Field: "name", Reason: "skill name must not be empty"}
	}

	err := adapter.Add(context.Background(), " ", "programming")
	if !errors.Is(err, skill.ErrValidation) {
		t.Errorf("expected validation error to propagate, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on error, got %q", out.String())
	}
}

// ============================================================================
// List Tests
// ============================================================================

func TestSkillAdapter_ListEmpty(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.List(context.Background(), primary.SkillFilters{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No skills added yet") {
		t.Errorf("expected empty-state message, got %q", out.String())
	}
}

func TestSkillAdapter_ListEmptyFiltered(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.List(context.Background(), primary.SkillFilters{Status: "completed"}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No skills match") {
		t.Errorf("expected filtered empty message, got %q", out.String())
	}
}

func TestSkillAdapter_ListRows(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	svc.listSkillsFn = func(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error) {
		return []*primary.Skill{
			{ID: 1, Name: "JavaScript", CategoryLabel: "Programming", Status: "in-progress", StatusLabel: "In Progress", Progress: 75, Level: "expert"},
			{ID: 2, Name: "UI Design", CategoryLabel: "Design", Status: "completed", StatusLabel: "Completed", Progress: 90, Level: "expert"},
		}, nil
	}

	if err := adapter.List(context.Background(), primary.SkillFilters{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"ID", "JavaScript", "UI Design", "In Progress", " 75%", " 90%"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Index(output, "JavaScript") > strings.Index(output, "UI Design") {
		t.Error("rows must keep service order")
	}
}

func TestSkillAdapter_ListError(t *testing.T) {
	adapter, svc, _ := newTestAdapter()
	svc.listSkillsFn = func(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error) {
		return nil, errors.New("boom")
	}

	err := adapter.List(context.Background(), primary.SkillFilters{})
	if err == nil || !strings.Contains(err.Error(), "failed to list skills") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

// ============================================================================
// Show / Edit / Status Tests
// ============================================================================

func TestSkillAdapter_Show(t *testing.T) {
	adapter, _, out := newTestAdapter()

	s, err := adapter.Show(context.Background(), 42)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if s.ID != 42 {
		t.Errorf("expected skill 42, got %d", s.ID)
	}
	if !strings.Contains(out.String(), "Skill:    42") || !strings.Contains(out.String(), "Progress: 0% (beginner)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_EditRequiresField(t *testing.T) {
	adapter, svc, _ := newTestAdapter()

	err := adapter.Edit(context.Background(), primary.UpdateSkillRequest{ID: 1})
	if err == nil {
		t.Fatal("expected error when no fields supplied")
	}
	if svc.updateCalled {
		t.Error("service must not be called without fields")
	}
}

func TestSkillAdapter_Edit(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	progress := 40

	err := adapter.Edit(context.Background(), primary.UpdateSkillRequest{ID: 7, Progress: &progress})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if svc.lastUpdateReq.ID != 7 || *svc.lastUpdateReq.Progress != 40 {
		t.Errorf("unexpected request %+v", svc.lastUpdateReq)
	}
	if !strings.Contains(out.String(), "✓ Skill 7 updated: Go [In Progress, 40%]") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_SetStatus(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.SetStatus(context.Background(), 3, "completed"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Skill 3 (Go) is now Completed") {
		t.Errorf("unexpected output %q", out.String())
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestSkillAdapter_Delete(t *testing.T) {
	adapter, svc, out := newTestAdapter()

	if err := adapter.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(svc.deleteCalls) != 1 || svc.deleteCalls[0] != 9 {
		t.Errorf("expected DeleteSkill(9), got %v", svc.deleteCalls)
	}
	if !strings.Contains(out.String(), "✓ Deleted skill 9: Go") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_DeleteUnknown(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	svc.getSkillFn = func(ctx context.Context, id int64) (*primary.Skill, error) {
		return nil, &skill.NotFoundError{ID: id}
	}

	if err := adapter.Delete(context.Background(), 9); err != nil {
		t.Fatalf("deleting an unknown id must not fail, got %v", err)
	}
	if !strings.Contains(out.String(), "Skill 9 not found, nothing deleted") {
		t.Errorf("unexpected output %q", out.String())
	}
}

// ============================================================================
// Stats / Milestones Tests
// ============================================================================

func TestSkillAdapter_Stats(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	svc.statsFn = func(ctx context.Context) (*primary.Stats, error) {
		return &primary.Stats{Total: 4, Completed: 1, InProgress: 2, Planned: 1, CompletionRate: 25}, nil
	}

	if err := adapter.Stats(context.Background()); err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Total skills:     4", "Completed:        1", "In progress:      2", "Completion rate:  25%"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestSkillAdapter_MilestonesEmpty(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.Milestones(context.Background(), 0); err != nil {
		t.Fatalf("Milestones failed: %v", err)
	}
	if !strings.Contains(out.String(), "No completed skills yet. Keep learning!") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_Milestones(t *testing.T) {
	adapter, svc, out := newTestAdapter()
	svc.milestonesFn = func(ctx context.Context, limit int) ([]*primary.Skill, error) {
		return []*primary.Skill{
			{ID: 2, Name: "UI Design", CategoryLabel: "Design", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)},
		}, nil
	}

	if err := adapter.Milestones(context.Background(), 3); err != nil {
		t.Fatalf("Milestones failed: %v", err)
	}

	if svc.lastLimit != 3 {
		t.Errorf("expected limit 3 forwarded, got %d", svc.lastLimit)
	}
	if !strings.Contains(out.String(), "✓ UI Design") || !strings.Contains(out.String(), "Design • added 2024-05-01") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSkillAdapter_Reset(t *testing.T) {
	adapter, _, out := newTestAdapter()

	if err := adapter.Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Skills reset") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		progress int
		filled   int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, string(skill.LevelFor(tt.progress)))
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progress %d: %d filled cells, want %d", tt.progress, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("progress %d: bar width %d, want %d", tt.progress, got, barWidth)
		}
	}
}
