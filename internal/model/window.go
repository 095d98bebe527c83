package model

import (
	"fmt"
	"time"
)

// Window scopes occurrence generation and status computation. AsOf is the
// caller-supplied "now"; the engine never reads a system clock so results are
// fully deterministic.
type Window struct {
	Start time.Time
	End   time.Time
	AsOf  time.Time
}

// NewWindow builds a normalized window from calendar dates.
func NewWindow(start, end, asOf time.Time) Window {
	return Window{
		Start: DateOf(start),
		End:   DateOf(end),
		AsOf:  DateOf(asOf),
	}
}

// Validate checks that the window is well-formed.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window start and end are required")
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s precedes start %s",
			w.End.Format("2006-01-02"), w.Start.Format("2006-01-02"))
	}
	if w.AsOf.IsZero() {
		return fmt.Errorf("window as-of date is required")
	}
	return nil
}

// Contains reports whether the date falls inside the window, inclusive on
// both ends.
func (w Window) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// SpanDays returns the number of calendar days the window covers, inclusive.
func (w Window) SpanDays() int {
	return DaysUntil(w.End, w.Start) + 1
}
