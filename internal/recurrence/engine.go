// Package recurrence implements calendar arithmetic for recurring
// obligations: projecting the next occurrence of a recurrence rule and
// generating full schedules over a bounded window.
package recurrence

import (
	"fmt"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// maxIterations bounds the residual candidate scan in NextOccurrence after
// jumping near the query date, so a degenerate rule can never spin forever.
const maxIterations = 5000

// NextOccurrence returns the first occurrence of the definition on or after
// from, honoring the definition's end date. ok is false when the series is
// exhausted before from; that is a normal outcome, not an error.
//
// The anchor day is DayOfOccurrence when set, otherwise the start date's own
// day-of-month (weekday ordinal for weekly rules). For month-granularity
// frequencies an anchor day beyond the target month's length clamps to the
// month's last day rather than rolling forward.
func NextOccurrence(def model.RecurrenceDefinition, from time.Time) (time.Time, bool) {
	from = model.DateOf(from)
	start := model.DateOf(def.StartDate)

	prev := time.Time{}
	base := lowerBoundIndex(def, start, from)
	for k := 0; k < maxIterations; k++ {
		candidate := occurrenceAt(def, start, base+k)
		if !prev.IsZero() && !candidate.After(prev) {
			// A rule that fails to move forward would loop forever.
			return time.Time{}, false
		}
		prev = candidate

		if candidate.Before(start) {
			// The anchor day already passed in the start month.
			continue
		}
		if def.EndDate != nil && candidate.After(model.DateOf(*def.EndDate)) {
			return time.Time{}, false
		}
		if !candidate.Before(from) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// Schedule generates every occurrence of the definition inside the window,
// each classified against window.AsOf. Returns an error only for invalid
// definitions or windows; an exhausted series yields an empty slice.
func Schedule(def model.RecurrenceDefinition, window model.Window) ([]model.Occurrence, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	cursor := window.Start
	if start := model.DateOf(def.StartDate); start.After(cursor) {
		cursor = start
	}

	// Occurrences strictly advance by at least a day, so the window span
	// itself bounds how many can exist inside it.
	var occurrences []model.Occurrence
	for i := 0; i < window.SpanDays(); i++ {
		date, ok := NextOccurrence(def, cursor)
		if !ok || date.After(window.End) {
			break
		}
		occurrences = append(occurrences, model.Occurrence{
			Date:   date,
			Status: model.CalculateStatus(date, window.AsOf, ""),
		})
		cursor = date.AddDate(0, 0, 1)
	}
	return occurrences, nil
}

// occurrenceAt computes the k-th occurrence of the series counting from the
// anchor. Month arithmetic always recomputes from the anchor so a clamped
// February date does not poison later months.
func occurrenceAt(def model.RecurrenceDefinition, start time.Time, k int) time.Time {
	unit := effectiveFrequency(def)
	interval := def.Interval
	if def.Frequency == model.FrequencyCustom {
		interval = def.CustomInterval
	}

	switch unit {
	case model.FrequencyDay:
		return start.AddDate(0, 0, k*interval)
	case model.FrequencyWeek:
		return weeklyAnchor(def, start).AddDate(0, 0, 7*k*interval)
	case model.FrequencyMonth:
		return monthlyOccurrence(def, start, k*interval)
	case model.FrequencyQuarter:
		return monthlyOccurrence(def, start, k*interval*3)
	case model.FrequencyYear:
		return monthlyOccurrence(def, start, k*interval*12)
	default:
		return start.AddDate(0, 0, k*interval)
	}
}

// weeklyAnchor finds the first date on or after start matching the weekday
// ordinal (1=Monday .. 7=Sunday). Without an ordinal the start date anchors
// the series itself.
func weeklyAnchor(def model.RecurrenceDefinition, start time.Time) time.Time {
	if def.DayOfOccurrence < 1 || def.DayOfOccurrence > 7 {
		return start
	}
	target := time.Weekday(def.DayOfOccurrence % 7)
	candidate := start
	for candidate.Weekday() != target {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// monthlyOccurrence lands `months` months after the anchor month, clamping
// the anchor day to the target month's length (31 in a 30-day month, 29-31
// in February).
func monthlyOccurrence(def model.RecurrenceDefinition, start time.Time, months int) time.Time {
	day := def.DayOfOccurrence
	if day == 0 {
		day = start.Day()
	}

	total := int(start.Month()) - 1 + months
	year := start.Year() + total/12
	month := time.Month(total%12 + 1)

	if last := model.LastDayOfMonth(year, month); day > last {
		day = last
	}
	return model.Date(year, month, day)
}

// lowerBoundIndex estimates a series index at or before the first occurrence
// on or after from, so scanning a decades-old daily rule does not walk every
// occurrence since its start. Always an underestimate; never past the answer.
func lowerBoundIndex(def model.RecurrenceDefinition, start, from time.Time) int {
	if !from.After(start) {
		return 0
	}

	interval := def.Interval
	if def.Frequency == model.FrequencyCustom {
		interval = def.CustomInterval
	}

	var steps int
	switch effectiveFrequency(def) {
	case model.FrequencyDay:
		steps = model.DaysUntil(from, start) / interval
	case model.FrequencyWeek:
		steps = model.DaysUntil(from, start) / (7 * interval)
	case model.FrequencyMonth:
		steps = model.MonthsBetween(start, from) / interval
	case model.FrequencyQuarter:
		steps = model.MonthsBetween(start, from) / (3 * interval)
	case model.FrequencyYear:
		steps = model.MonthsBetween(start, from) / (12 * interval)
	}

	// Margin for anchor shifts (weekly ordinal, month-end clamps).
	steps -= 2
	if steps < 0 {
		return 0
	}
	return steps
}

// effectiveFrequency resolves custom rules to their underlying unit.
func effectiveFrequency(def model.RecurrenceDefinition) model.Frequency {
	if def.Frequency == model.FrequencyCustom {
		return def.CustomUnit
	}
	return def.Frequency
}
