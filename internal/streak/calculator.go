package streak

import (
	"sort"
	"time"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

// Snapshot is the pair of values cached on the user aggregate.
type Snapshot struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// Compute returns both streak values for records as of now.
func Compute(records []Record, now time.Time) Snapshot {
	return Snapshot{
		Current: Current(records, now),
		Longest: Longest(records),
	}
}

// Current counts consecutive days with a completed item, ending today. A run
// that ends yesterday still counts so the streak survives until today is over.
// Days after today are ignored.
func Current(records []Record, now time.Time) int {
	return currentRun(completedDays(records, Record.HasCompleted), util.DayKey(now))
}

// Longest returns the longest run of consecutive completed days.
func Longest(records []Record) int {
	return longestRun(completedDays(records, Record.HasCompleted))
}

// completedDays returns the sorted (ascending) unique day keys of records
// accepted by keep.
func completedDays(records []Record, keep func(Record) bool) []string {
	seen := make(map[string]struct{}, len(records))
	days := make([]string, 0, len(records))
	for _, r := range records {
		if !keep(r) {
			continue
		}
		key := util.DayKey(r.Date)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, key)
	}
	sort.Strings(days)
	return days
}

func currentRun(days []string, today string) int {
	// Walk newest first, skipping anything dated after today.
	i := len(days) - 1
	for i >= 0 && days[i] > today {
		i--
	}
	if i < 0 {
		return 0
	}

	expected := today
	if days[i] != today {
		expected = util.ShiftDayKey(today, -1)
		if days[i] != expected {
			return 0
		}
	}

	streak := 0
	for ; i >= 0; i-- {
		if days[i] != expected {
			break
		}
		streak++
		expected = util.ShiftDayKey(expected, -1)
	}
	return streak
}

func longestRun(days []string) int {
	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && day == util.ShiftDayKey(days[i-1], 1) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
