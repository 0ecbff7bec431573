package skill

import "time"

// SampleSkills returns the collection shown to first-time users.
func SampleSkills(now time.Time) []Skill {
	day := 24 * time.Hour
	return []Skill{
		{ID: 1, Name: "JavaScript", Category: CategoryProgramming, Progress: 75, Status: StatusInProgress, CreatedAt: Timestamp(now)},
		{ID: 2, Name: "UI Design", Category: CategoryDesign, Progress: 90, Status: StatusCompleted, CreatedAt: Timestamp(now.Add(-day))},
		{ID: 3, Name: "React", Category: CategoryProgramming, Progress: 30, Status: StatusInProgress, CreatedAt: Timestamp(now.Add(-2 * day))},
	}
}
