// Package day handles the calendar dates stored as TEXT in the brew log.
package day

import (
	"strings"
	"time"
)

// Layout is the canonical stored form of a date.
const Layout = "2006-01-02"

// Legacy rows may carry a time component or a full timestamp.
var layouts = []string{
	Layout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Format renders t as a stored date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a stored date. ok is false for empty or unparsable values.
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

// Normalize validates s and returns it in canonical form. Empty input is
// returned unchanged with ok=true.
func Normalize(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", true
	}
	t, ok := Parse(s)
	if !ok {
		return "", false
	}
	return Format(t), true
}
