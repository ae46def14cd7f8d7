package promotion

import (
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseStart parses a promotion start date. A date without a time starts at
// midnight UTC of that day.
func ParseStart(s string) (time.Time, bool) {
	return parseBound(s, false)
}

// ParseEnd parses a promotion end date. A date without a time covers the
// whole day, so the window stays inclusive of the end date.
func ParseEnd(s string) (time.Time, bool) {
	return parseBound(s, true)
}

func parseBound(s string, end bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}

	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

// InWindow reports whether now lies within the inclusive [start, end] window.
// An unparseable bound puts every instant outside the window.
func InWindow(start, end string, now time.Time) bool {
	from, ok := ParseStart(start)
	if !ok {
		return false
	}
	to, ok := ParseEnd(end)
	if !ok {
		return false
	}
	return !now.Before(from) && !now.After(to)
}
