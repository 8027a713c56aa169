package streak

import (
	"time"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

// CategoryStat aggregates the items of one category.
type CategoryStat struct {
	Count     int `json:"count"`
	Completed int `json:"completed"`
	Streak    int `json:"streak"`
}

// CategoryStats attributes every item to its category, counting items and
// completed items, and computes each category's current streak.
func CategoryStats(records []Record, now time.Time) map[string]CategoryStat {
	stats := make(map[string]CategoryStat, len(KnownCategories))
	for _, c := range KnownCategories {
		stats[c] = CategoryStat{}
	}

	for _, r := range records {
		for _, it := range r.Items {
			cat := categoryOf(it)
			s := stats[cat]
			s.Count++
			if it.Completed {
				s.Completed++
			}
			stats[cat] = s
		}
	}

	for cat, s := range stats {
		s.Streak = CategoryStreak(records, cat, now)
		stats[cat] = s
	}
	return stats
}

// CategoryStreak is the current streak restricted to days holding a completed
// item of category. Uncompleted items never extend it.
func CategoryStreak(records []Record, category string, now time.Time) int {
	days := completedDays(records, func(r Record) bool {
		return r.HasCompletedIn(category)
	})
	return currentRun(days, util.DayKey(now))
}
