package app

import (
	"context"
	"encoding/binary"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/example/skilltrack/internal/core/skill"
	"github.com/example/skilltrack/internal/logger"
	"github.com/example/skilltrack/internal/ports/primary"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// SkillServiceOptions tunes SkillServiceImpl. Zero values are usable.
type SkillServiceOptions struct {
	MilestoneLimit int
	StrictProgress bool
	SeedOnFirstRun bool
	Now            func() time.Time
}

// SkillServiceImpl implements the SkillService interface.
// It owns the in-memory collection and writes it through to the store after
// every mutation. A failed write rolls the mutation back.
type SkillServiceImpl struct {
	store secondary.SkillStore
	log   *logger.Logger
	opts  SkillServiceOptions

	mu     sync.Mutex
	skills []skill.Skill
	lastID int64
	views  viewCache
}

// viewCache memoizes derived views on a digest of the collection.
type viewCache struct {
	valid     bool
	digest    uint64
	stats     skill.Stats
	completed []skill.Skill // every completed skill, newest first
}

// NewSkillService creates a new SkillService with injected dependencies.
func NewSkillService(store secondary.SkillStore, log *logger.Logger, opts SkillServiceOptions) *SkillServiceImpl {
	if opts.MilestoneLimit <= 0 {
		opts.MilestoneLimit = skill.DefaultMilestoneLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SkillServiceImpl{
		store: store,
		log:   log.With("component", "skill_service"),
		opts:  opts,
	}
}

// Bootstrap loads the stored collection. When nothing usable is stored it
// seeds the sample skills (if enabled) and saves them immediately.
func (s *SkillServiceImpl) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, found, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("failed to load skills", "error", err)
		return &skill.PersistenceError{Op: "load", Err: err}
	}

	if found {
		s.skills = recordsToSkills(records)
		s.lastID = skill.MaxID(s.skills)
		s.log.Debug("loaded skills", "count", len(s.skills))
		return nil
	}

	if !s.opts.SeedOnFirstRun {
		s.skills = nil
		s.lastID = 0
		s.log.Debug("no stored skills, starting empty")
		return nil
	}

	s.log.Info("no stored skills, seeding samples")
	return s.commit(ctx, "seed", skill.SampleSkills(s.opts.Now()))
}

// AddSkill creates a planned skill with zero progress.
func (s *SkillServiceImpl) AddSkill(ctx context.Context, req primary.AddSkillRequest) (*primary.Skill, error) {
	guard := skill.CanAddSkill(skill.AddSkillContext{
		Name:     req.Name,
		Category: req.Category,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	id := skill.NextID(now, max(s.lastID, skill.MaxID(s.skills)))
	created := skill.New(id, req.Name, skill.Category(req.Category), now)

	next := append(slices.Clone(s.skills), created)
	if err := s.commit(ctx, "add", next); err != nil {
		return nil, err
	}
	s.lastID = id

	return skillToPort(created), nil
}

// UpdateSkill applies the supplied fields to an existing skill.
func (s *SkillServiceImpl) UpdateSkill(ctx context.Context, req primary.UpdateSkillRequest) (*primary.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := skill.IndexOf(s.skills, req.ID)
	if idx < 0 {
		return nil, &skill.NotFoundError{ID: req.ID}
	}

	guard := skill.CanUpdateSkill(skill.UpdateSkillContext{
		Name:           req.Name,
		Category:       req.Category,
		Status:         req.Status,
		Progress:       req.Progress,
		StrictProgress: s.opts.StrictProgress,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	updated := s.skills[idx]
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		updated.Category = skill.Category(*req.Category)
	}
	if req.Progress != nil {
		updated.Progress = skill.ClampProgress(*req.Progress)
	}
	if req.Status != nil {
		updated.Status = skill.Status(*req.Status)
	}

	next := slices.Clone(s.skills)
	next[idx] = updated
	if err := s.commit(ctx, "update", next); err != nil {
		return nil, err
	}

	return skillToPort(updated), nil
}

// SetStatus changes only the status of a skill.
func (s *SkillServiceImpl) SetStatus(ctx context.Context, id int64, status string) (*primary.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := skill.IndexOf(s.skills, id)
	if idx < 0 {
		return nil, &skill.NotFoundError{ID: id}
	}
	if err := skill.CanSetStatus(status).Error(); err != nil {
		return nil, err
	}

	next := slices.Clone(s.skills)
	next[idx].Status = skill.Status(status)
	if err := s.commit(ctx, "set status", next); err != nil {
		return nil, err
	}

	return skillToPort(next[idx]), nil
}

// DeleteSkill removes a skill. Unknown ids are a no-op and do not write.
func (s *SkillServiceImpl) DeleteSkill(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := skill.IndexOf(s.skills, id)
	if idx < 0 {
		s.log.Debug("delete of unknown skill ignored", "id", id)
		return nil
	}

	next := slices.Delete(slices.Clone(s.skills), idx, idx+1)
	return s.commit(ctx, "delete", next)
}

// GetSkill retrieves a skill by ID.
func (s *SkillServiceImpl) GetSkill(ctx context.Context, id int64) (*primary.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := skill.IndexOf(s.skills, id)
	if idx < 0 {
		return nil, &skill.NotFoundError{ID: id}
	}
	return skillToPort(s.skills[idx]), nil
}

// ListSkills returns skills in insertion order, optionally filtered.
func (s *SkillServiceImpl) ListSkills(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error) {
	if filters.Status != "" {
		if _, err := skill.ParseStatus(filters.Status); err != nil {
			return nil, err
		}
	}
	if filters.Category != "" {
		if _, err := skill.ParseCategory(filters.Category); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*primary.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		if filters.Status != "" && string(sk.Status) != filters.Status {
			continue
		}
		if filters.Category != "" && string(sk.Category) != filters.Category {
			continue
		}
		out = append(out, skillToPort(sk))
	}
	return out, nil
}

// Stats returns aggregate counts over all skills.
func (s *SkillServiceImpl) Stats(ctx context.Context) (*primary.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.derivedViews()
	return &primary.Stats{
		Total:          cache.stats.Total,
		Completed:      cache.stats.Completed,
		InProgress:     cache.stats.InProgress,
		Planned:        cache.stats.Planned,
		CompletionRate: cache.stats.CompletionRate,
	}, nil
}

// Milestones returns up to limit completed skills, newest first.
// A non-positive limit uses the configured default.
func (s *SkillServiceImpl) Milestones(ctx context.Context, limit int) ([]*primary.Skill, error) {
	if limit <= 0 {
		limit = s.opts.MilestoneLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	completed := s.derivedViews().completed
	if len(completed) > limit {
		completed = completed[:limit]
	}

	out := make([]*primary.Skill, len(completed))
	for i, sk := range completed {
		out[i] = skillToPort(sk)
	}
	return out, nil
}

// Reset replaces all skills with the sample collection.
func (s *SkillServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "reset", skill.SampleSkills(s.opts.Now()))
}

// Helper methods

// commit persists next and, only on success, makes it the live collection.
// Callers hold s.mu.
func (s *SkillServiceImpl) commit(ctx context.Context, op string, next []skill.Skill) error {
	if err := s.store.Save(ctx, skillsToRecords(next)); err != nil {
		s.log.Error("write-through failed, mutation rolled back", "op", op, "error", err)
		return &skill.PersistenceError{Op: "save", Err: err}
	}

	s.skills = next
	if id := skill.MaxID(next); id > s.lastID {
		s.lastID = id
	}
	s.log.Debug("skills saved", "op", op, "count", len(next))
	return nil
}

// derivedViews returns cached views, recomputing when the collection digest
// has changed. Callers hold s.mu.
func (s *SkillServiceImpl) derivedViews() *viewCache {
	digest := fingerprint(s.skills)
	if s.views.valid && s.views.digest == digest {
		return &s.views
	}

	s.views = viewCache{
		valid:     true,
		digest:    digest,
		stats:     skill.ComputeStats(s.skills),
		completed: skill.ComputeMilestones(s.skills, len(s.skills)),
	}
	return &s.views
}

// fingerprint hashes every field that can influence a derived view.
func fingerprint(skills []skill.Skill) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, sk := range skills {
		binary.LittleEndian.PutUint64(buf[:], uint64(sk.ID))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(sk.CreatedAt.UnixNano()))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(sk.Progress))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(sk.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(sk.Category))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(sk.Status))
		_, _ = h.WriteString("\x00")
	}
	return h.Sum64()
}

func recordsToSkills(records []*secondary.SkillRecord) []skill.Skill {
	out := make([]skill.Skill, 0, len(records))
	for _, r := range records {
		out = append(out, skill.Skill{
			ID:        r.ID,
			Name:      r.Name,
			Category:  skill.Category(r.Category),
			Progress:  r.Progress,
			Status:    skill.Status(r.Status),
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func skillsToRecords(skills []skill.Skill) []*secondary.SkillRecord {
	out := make([]*secondary.SkillRecord, 0, len(skills))
	for _, sk := range skills {
		out = append(out, &secondary.SkillRecord{
			ID:        sk.ID,
			Name:      sk.Name,
			Category:  string(sk.Category),
			Progress:  sk.Progress,
			Status:    string(sk.Status),
			CreatedAt: sk.CreatedAt,
		})
	}
	return out
}

func skillToPort(sk skill.Skill) *primary.Skill {
	return &primary.Skill{
		ID:            sk.ID,
		Name:          sk.Name,
		Category:      string(sk.Category),
		CategoryLabel: sk.Category.Label(),
		Progress:      sk.Progress,
		Level:         string(skill.LevelFor(sk.Progress)),
		Status:        string(sk.Status),
		StatusLabel:   sk.Status.Label(),
		CreatedAt:     sk.CreatedAt,
	}
}

// Ensure SkillServiceImpl implements the interface.
var _ primary.SkillService = (*SkillServiceImpl)(nil)
