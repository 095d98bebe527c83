package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidEntry     = errors.New("invalid schedule entry")
	ErrInvalidPayment   = errors.New("invalid scheduled payment")
	ErrInvalidGoal      = errors.New("invalid goal")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateObligation checks a recurring obligation before insertion,
// including its recurrence rule. Invalid rules never reach the database.
func validateObligation(obligation *model.RecurringObligation) error {
	if obligation == nil {
		return fmt.Errorf("%w: obligation", ErrNilParameter)
	}
	if obligation.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidEntry)
	}
	return obligation.Recurrence.Validate()
}

// validateEntry checks a liability schedule entry before insertion.
func validateEntry(entry *model.LiabilityScheduleEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if entry.DueDate.IsZero() {
		return fmt.Errorf("%w: missing due date", ErrInvalidEntry)
	}
	if entry.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidEntry)
	}
	return nil
}

// validatePayment checks a scheduled payment before insertion.
func validatePayment(payment *model.ScheduledPayment) error {
	if payment == nil {
		return fmt.Errorf("%w: payment", ErrNilParameter)
	}
	if payment.DueDate.IsZero() {
		return fmt.Errorf("%w: missing due date", ErrInvalidPayment)
	}
	if payment.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidPayment)
	}
	return nil
}

// validateGoal checks a goal before insertion.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if goal.TargetAmount < 0 {
		return fmt.Errorf("%w: negative target amount", ErrInvalidGoal)
	}
	return nil
}
