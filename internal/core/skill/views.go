package skill

import "sort"

// DefaultMilestoneLimit is how many completed skills the milestone list shows.
const DefaultMilestoneLimit = 5

// Stats aggregates the collection.
type Stats struct {
	Total          int
	Completed      int
	InProgress     int
	Planned        int
	CompletionRate int // percent, rounded half up
}

// ComputeStats counts records by status and derives the completion rate.
func ComputeStats(records []Skill) Stats {
	stats := Stats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusCompleted:
			stats.Completed++
		case StatusInProgress:
			stats.InProgress++
		case StatusPlanned:
			stats.Planned++
		}
	}
	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	return stats
}

// CompletionRate returns round(completed/total*100) with halves rounded up,
// or 0 when total is 0.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

// ComputeMilestones returns up to limit completed skills, most recently
// created first. Equal timestamps keep collection order.
func ComputeMilestones(records []Skill, limit int) []Skill {
	if limit <= 0 {
		return []Skill{}
	}

	completed := make([]Skill, 0, len(records))
	for _, r := range records {
		if r.Status == StatusCompleted {
			completed = append(completed, r)
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})

	if len(completed) > limit {
		completed = completed[:limit]
	}
	return completed
}
