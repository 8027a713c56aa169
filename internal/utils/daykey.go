package util

import "time"

// DayKeyLayout is the canonical UTC calendar-day identifier format.
const DayKeyLayout = "2006-01-02"

// Clock returns the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

// DayKey returns the UTC calendar day of t as YYYY-MM-DD. Streak and period
// logic compares days only through this key.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// StartOfDay returns midnight UTC of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDayKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.UTC)
}

// ShiftDayKey returns the key n calendar days after key. Negative n moves back.
// An unparsable key yields "".
func ShiftDayKey(key string, n int) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return ""
	}
	return DayKey(t.AddDate(0, 0, n))
}
