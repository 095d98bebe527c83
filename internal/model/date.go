package model

import "time"

// The engine is time-zone agnostic: every date it touches is normalized to
// UTC midnight so comparisons and day arithmetic never see a time-of-day
// component.

// DateOf strips the time-of-day component, returning the calendar date at
// UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in the month containing t.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped advances t by whole months, clamping the day to the
// target month's length instead of letting it normalize into the next month
// (Jan 31 + 1 month is Feb 28/29, never Mar 2/3).
func AddMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)

	day := t.Day()
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return Date(year, month, day)
}

// MonthsBetween counts whole calendar months from a to b, clamped at zero.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}
