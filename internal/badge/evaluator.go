package badge

import "github.com/google/uuid"

// Stats are the aggregate counters badge criteria are evaluated against.
type Stats struct {
	TotalGoals     int64
	CompletedGoals int64
	CurrentStreak  int
	LongestStreak  int
}

func (s Stats) streakAtLeast(n int) bool {
	return s.CurrentStreak >= n || s.LongestStreak >= n
}

var predicates = map[string]func(Stats) bool{
	CriteriaFirstGoal:       func(s Stats) bool { return s.TotalGoals >= 1 },
	CriteriaCompleteGoal:    func(s Stats) bool { return s.CompletedGoals >= 1 },
	CriteriaComplete5Goals:  func(s Stats) bool { return s.CompletedGoals >= 5 },
	CriteriaComplete10Goals: func(s Stats) bool { return s.CompletedGoals >= 10 },
	CriteriaComplete25Goals: func(s Stats) bool { return s.CompletedGoals >= 25 },
	CriteriaStreak7:         func(s Stats) bool { return s.streakAtLeast(7) },
	CriteriaStreak30:        func(s Stats) bool { return s.streakAtLeast(30) },
	CriteriaStreak100:       func(s Stats) bool { return s.streakAtLeast(100) },
}

// Qualifies reports whether stats satisfy criteria. Unknown criteria never
// qualify.
func Qualifies(criteria string, stats Stats) bool {
	p, ok := predicates[criteria]
	return ok && p(stats)
}

// Evaluate returns the catalog badges that stats qualify for and that are not
// already in earned, in catalog order.
func Evaluate(stats Stats, catalog []Badge, earned map[uuid.UUID]struct{}) []Badge {
	var award []Badge
	for _, b := range catalog {
		if _, ok := earned[b.ID]; ok {
			continue
		}
		if Qualifies(b.Criteria, stats) {
			award = append(award, b)
		}
	}
	return award
}
