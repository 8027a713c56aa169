package util

import (
	"fmt"
	"strings"
	"time"
)

// Date is a request-side calendar day. It accepts either a bare YYYY-MM-DD
// or a full RFC 3339 timestamp and always holds midnight UTC of the UTC day.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: StartOfDay(t)}
}

func ToTimePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + DayKey(d.Time) + `"`), nil
}

// ParseDate parses s as a day key or RFC 3339 timestamp and normalizes the
// result to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := ParseDayKey(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return StartOfDay(t), nil
}
