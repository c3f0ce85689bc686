package util

import (
	"time"
)

// DateLayout is the wire format for calendar dates in API responses.
const DateLayout = "2006-01-02"

// NextBusinessDay returns the next weekday strictly after t.
// Holidays are not modeled; weekends roll to Monday.
func NextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FormatDate formats t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// YearsAgo returns the instant `years` calendar years before t.
func YearsAgo(t time.Time, years int) time.Time {
	return t.AddDate(-years, 0, 0)
}
