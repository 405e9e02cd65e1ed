// Package dates interprets the ISO-ish date strings carried by events.
package dates

import (
	"strings"
	"time"
)

// Accepted layouts, most specific first. A year-only or year-month
// string parses to the first day of its period.
var layouts = []string{"2006-01-02", "2006-01", "2006"}

// Sentinel is far enough in the future that undated events sort last.
var Sentinel = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Parse tries the accepted layouts in order and reports whether any
// matched. Empty, whitespace-only and malformed input are a normal
// "no date" outcome, never an error.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrSentinel parses s, substituting the sentinel when no date is found.
// Used as the primary sort key so undated events land at the end.
func OrSentinel(s string) time.Time {
	if t, ok := Parse(s); ok {
		return t
	}
	return Sentinel
}
