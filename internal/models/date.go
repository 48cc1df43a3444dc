package models

import "time"

// DayFormat is the canonical day key format for snapshot and period dates.
const DayFormat = "2006-01-02"

// Day truncates t to its calendar day (midnight UTC). All day-granularity
// fields (snapshot dates, budget period bounds) are stored in this form so
// that equality and range comparisons work on whole days.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day (midnight UTC).
func Today() time.Time {
	return Day(time.Now())
}

// DayString formats t as its canonical day key, e.g. "2024-02-29".
func DayString(t time.Time) string {
	return Day(t).Format(DayFormat)
}

// ParseDay parses a canonical day key back into a day-truncated time.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.UTC)
}

// AddDays returns the day n days after (or before, for negative n) t.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns the whole-day span from a to b (positive when b is
// after a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month. Day zero of the following
// month normalizes to the final day of this one, so month lengths and leap
// years fall out of the time package.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}
