package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutDateTime  = "2006-01-02 15:04:05"
	layoutDateLocal = "2006-01-02T15:04"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime accepts "YYYY-MM-DD HH:MM:SS", the HTML datetime-local
// form "YYYY-MM-DDTHH:MM" (local timezone) and RFC3339.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateLocal, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// CivilDate drops the clock part, keeping the calendar day of t in its own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
