// Package progress holds the progression rules of the journal: day rollover and
// streaks, intention creation and completion, the gift draw, and the read-only
// calendar and statistics queries.
//
// Every mutating function takes a document by value and returns the next document
// plus a result describing what happened. Nothing here touches storage.
package progress

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	epochDate   = "1970-01-01"
)

// DateKey formats t as the calendar day in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

// MonthKey formats t as YYYY-MM in loc.
func MonthKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(monthLayout)
}

// ParseDate parses a YYYY-MM-DD key as UTC midnight.
func ParseDate(key string) (time.Time, error) {
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t, nil
}

// DayDiff returns the absolute number of whole days between two date keys.
func DayDiff(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	d := int(tb.Sub(ta).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d, nil
}
