package goal

import (
	"time"

	"github.com/saulo-duarte/streaker/internal/apperror"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

// PeriodStart returns midnight UTC of the first day of the bucket holding t.
// Weeks start on Monday.
func PeriodStart(t time.Time, p Period) time.Time {
	day := util.StartOfDay(t)
	switch p {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// PeriodEnd returns midnight UTC of the last day of the bucket holding t.
func PeriodEnd(t time.Time, p Period) time.Time {
	start := PeriodStart(t, p)
	switch p {
	case PeriodWeekly:
		return start.AddDate(0, 0, 6)
	case PeriodMonthly:
		return start.AddDate(0, 1, -1)
	default:
		return start
	}
}

// LogUpsert describes the progress-log write that accompanies an increment.
type LogUpsert struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	TargetCount int
	IncrementBy int
	IsCompleted bool
}

// IncrementProgress adds n to g's progress. An ACTIVE goal that reaches its
// target becomes COMPLETED; other statuses are left alone. The log bucket is
// taken from now, not from the goal's start date.
func IncrementProgress(g Goal, n int, now time.Time) (Goal, LogUpsert, error) {
	if n < 1 {
		return g, LogUpsert{}, apperror.Validation("incrementBy must be at least 1")
	}

	g.CurrentProgress += n
	completed := g.CurrentProgress >= g.TargetCount
	if completed && g.Status == StatusActive {
		g.Status = StatusCompleted
	}

	return g, LogUpsert{
		PeriodStart: PeriodStart(now, g.Period),
		PeriodEnd:   PeriodEnd(now, g.Period),
		TargetCount: g.TargetCount,
		IncrementBy: n,
		IsCompleted: completed,
	}, nil
}

// CheckAndUpdateStatus completes or fails an ACTIVE goal. It is a no-op for
// every other status, so repeated calls are safe.
func CheckAndUpdateStatus(g Goal, now time.Time) Goal {
	if g.Status != StatusActive {
		return g
	}
	switch {
	case g.CurrentProgress >= g.TargetCount:
		g.Status = StatusCompleted
	case g.EndDate != nil && util.StartOfDay(now).After(*g.EndDate):
		g.Status = StatusFailed
	}
	return g
}

func Pause(g Goal) (Goal, error) {
	if g.Status != StatusActive {
		return g, apperror.Validation("only active goals can be paused")
	}
	g.Status = StatusPaused
	return g, nil
}

func Resume(g Goal) (Goal, error) {
	if g.Status != StatusPaused {
		return g, apperror.Validation("only paused goals can be resumed")
	}
	g.Status = StatusActive
	return g, nil
}

// DeriveEndDate normalizes an explicit end date, or computes one from
// targetDays. It returns nil when neither is given.
func DeriveEndDate(start time.Time, targetDays *int, end *time.Time) *time.Time {
	if end != nil && !end.IsZero() {
		e := util.StartOfDay(*end)
		return &e
	}
	if targetDays != nil {
		e := util.StartOfDay(start).AddDate(0, 0, *targetDays)
		return &e
	}
	return nil
}
