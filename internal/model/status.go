package model

import "time"

// Status is the lifecycle status of a single obligation occurrence.
type Status string

const (
	// StatusUpcoming means the due date is in the future.
	StatusUpcoming Status = "upcoming"
	// StatusDueToday means the due date is the reference date itself.
	StatusDueToday Status = "due_today"
	// StatusOverdue means the due date has passed without a terminal status.
	StatusOverdue Status = "overdue"
	// StatusPaid means the occurrence has been settled.
	StatusPaid Status = "paid"
	// StatusCancelled means the occurrence was cancelled.
	StatusCancelled Status = "cancelled"
	// StatusSkipped means the occurrence was deliberately skipped.
	StatusSkipped Status = "skipped"
	// StatusPostponed means the occurrence was pushed to a later date.
	StatusPostponed Status = "postponed"
)

// IsTerminal reports whether the status is sticky: once set it never changes
// based on date comparison.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusSkipped, StatusPostponed:
		return true
	default:
		return false
	}
}

// CalculateStatus classifies an occurrence relative to asOf. A terminal
// persisted status wins regardless of dates; otherwise the due date alone
// decides.
func CalculateStatus(dueDate, asOf time.Time, persisted Status) Status {
	if persisted.IsTerminal() {
		return persisted
	}

	due := DateOf(dueDate)
	ref := DateOf(asOf)
	switch {
	case due.Before(ref):
		return StatusOverdue
	case due.Equal(ref):
		return StatusDueToday
	default:
		return StatusUpcoming
	}
}

// DaysUntil returns the signed whole-day distance from asOf to dueDate.
// Negative values mean the due date is already past.
func DaysUntil(dueDate, asOf time.Time) int {
	due := DateOf(dueDate)
	ref := DateOf(asOf)
	return int(due.Sub(ref).Hours() / 24)
}
