// Package catalogdate parses the date formats found in catalog dumps.
package catalogdate

import (
	"fmt"
	"time"
)

// Layouts accepted by ParseAdded, most common first.
var addedLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

// ParseAdded parses a date_added value such as "September 25, 2021".
// Blank input returns the zero time and no error.
func ParseAdded(s string) (time.Time, error) {
	s = trimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range addedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected e.g. September 25, 2021)", s)
}

// FormatDate renders t as a SQL DATE literal, "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// trimSpace strips blanks, tabs and the non-breaking spaces some exports
// leave around dates.
func trimSpace(s string) string {
	isBlank := func(r rune) bool { return r == ' ' || r == '\t' || r == '\u00a0' }
	runes := []rune(s)
	start := 0
	for start < len(runes) && isBlank(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && isBlank(runes[end-1]) {
		end--
	}
	return string(runes[start:end])
}
