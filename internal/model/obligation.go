// Package model defines the core domain types for the obligation engine.
package model

import (
	"fmt"
	"time"
)

// SourceType identifies which obligation source produced a unified record.
type SourceType string

const (
	// SourceRecurring marks records derived from recurring obligations.
	SourceRecurring SourceType = "recurring"
	// SourceLiability marks records derived from liability schedule entries.
	SourceLiability SourceType = "liability"
	// SourcePayment marks records derived from one-off scheduled payments.
	SourcePayment SourceType = "payment"
	// SourceGoal marks records synthesized from goal contribution targets.
	SourceGoal SourceType = "goal"
)

// Lifecycle is the mutable state of a recurring obligation source.
type Lifecycle string

const (
	// LifecycleActive means the obligation still generates occurrences.
	LifecycleActive Lifecycle = "active"
	// LifecyclePaused means occurrence generation is temporarily suspended.
	LifecyclePaused Lifecycle = "paused"
	// LifecycleCompleted means the series has run to its end.
	LifecycleCompleted Lifecycle = "completed"
	// LifecycleCancelled means the obligation was cancelled by the user.
	LifecycleCancelled Lifecycle = "cancelled"
)

// AmountType distinguishes fixed amounts from variable estimates.
type AmountType string

const (
	// AmountFixed means every occurrence costs exactly Amount.
	AmountFixed AmountType = "fixed"
	// AmountVariable means occurrences vary; EstimatedAmount is the best guess.
	AmountVariable AmountType = "variable"
)

// RecurringObligation is a bill that repeats on a recurrence rule.
type RecurringObligation struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	NextDueDate     *time.Time // cached sort key, refreshed when the rule changes
	CategoryID      *int64
	AccountID       *int64
	Title           string
	Description     string
	Currency        string
	AmountType      AmountType
	Lifecycle       Lifecycle
	Recurrence      RecurrenceDefinition
	Amount          float64
	EstimatedAmount float64
	ID              int64
}

// ResolveAmount returns the amount a single occurrence should carry.
func (r *RecurringObligation) ResolveAmount() float64 {
	if r.AmountType == AmountVariable {
		return r.EstimatedAmount
	}
	return r.Amount
}

// LiabilityScheduleEntry is one pre-materialized installment of a liability.
// Unlike recurring obligations the full series already exists as rows.
type LiabilityScheduleEntry struct {
	DueDate     time.Time
	Principal   *float64
	Interest    *float64
	Title       string
	Currency    string
	Status      Status
	Amount      float64
	ID          int64
	LiabilityID int64
	Sequence    int
}

// ScheduledPayment is a single non-repeating payment with a due date.
type ScheduledPayment struct {
	DueDate     time.Time
	CreatedAt   time.Time
	CategoryID  *int64
	AccountID   *int64
	Title       string
	Description string
	Currency    string
	Status      Status
	Amount      float64
	ID          int64
}

// Goal is a savings goal; contribution targets are synthesized from it,
// never stored.
type Goal struct {
	TargetDate   *time.Time
	Name         string
	Currency     string
	TargetAmount float64
	SavedAmount  float64
	ID           int64
}

// RemainingAmount returns how much is still needed to reach the goal.
func (g *Goal) RemainingAmount() float64 {
	remaining := g.TargetAmount - g.SavedAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Occurrence is a single computed instance of an obligation. Occurrences are
// derived on demand and never persisted.
type Occurrence struct {
	Date   time.Time
	Status Status
	Amount float64
}

// UnifiedObligationRecord is the canonical shape every source adapter emits.
type UnifiedObligationRecord struct {
	DueDate      time.Time
	Metadata     map[string]any
	ID           string
	SourceType   SourceType
	Title        string
	Description  string
	Currency     string
	CategoryName string
	AccountName  string
	Status       Status
	Amount       float64
	SourceID     int64
	DaysUntil    int
}

// OccurrenceID derives the identity of a computed occurrence. Occurrences are
// not independently addressable rows, so identity comes from the source and
// the date.
func OccurrenceID(sourceID int64, date time.Time) string {
	return fmt.Sprintf("%d_%s", sourceID, date.Format("2006-01-02"))
}
