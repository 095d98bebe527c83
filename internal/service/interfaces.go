// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// ObligationFilter defines filtering options applied to the unified
// obligation feed after the per-source fetches.
type ObligationFilter struct {
	Category         string
	Account          string
	Search           string
	Statuses         []model.Status
	IncludePaid      bool
	IncludeCancelled bool
}

// Storage defines the contract for our persistence layer. Adapters only read
// source rows; the surrounding CRUD screens own all other mutation. The one
// derived value ever written back is the cached next due date on recurring
// obligations.
type Storage interface {
	// Recurring obligation operations
	GetActiveRecurringObligations(ctx context.Context) ([]model.RecurringObligation, error)
	GetRecurringObligationByID(ctx context.Context, id int64) (*model.RecurringObligation, error)
	CreateRecurringObligation(ctx context.Context, obligation *model.RecurringObligation) error
	UpdateNextDueDate(ctx context.Context, id int64, nextDue *time.Time) error

	// Liability schedule operations
	GetLiabilityEntriesInRange(ctx context.Context, start, end time.Time) ([]model.LiabilityScheduleEntry, error)
	CreateLiabilityEntry(ctx context.Context, entry *model.LiabilityScheduleEntry) error

	// Scheduled payment operations
	GetScheduledPaymentsInRange(ctx context.Context, start, end time.Time) ([]model.ScheduledPayment, error)
	CreateScheduledPayment(ctx context.Context, payment *model.ScheduledPayment) error

	// Goal operations
	GetGoals(ctx context.Context) ([]model.Goal, error)
	CreateGoal(ctx context.Context, goal *model.Goal) error

	// Display name lookups
	GetCategoryName(ctx context.Context, id int64) (string, error)
	GetAccountName(ctx context.Context, id int64) (string, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// NameResolver resolves display-only labels for category and account
// references. Lookups are best-effort: a missing name must never fail an
// adapter fetch, the optional field is simply omitted.
type NameResolver interface {
	CategoryName(ctx context.Context, id int64) (string, error)
	AccountName(ctx context.Context, id int64) (string, error)
}

// Adapter is the common contract every obligation source implements: fetch
// raw rows for its source type, normalize them into unified records, and
// classify each against the window's as-of date.
type Adapter interface {
	SourceType() model.SourceType
	FetchOccurrencesInWindow(ctx context.Context, window model.Window, filter ObligationFilter) ([]model.UnifiedObligationRecord, error)
}
