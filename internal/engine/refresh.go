package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/recurrence"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// RefreshNextDueDates recomputes the cached next due date for every active
// recurring obligation as of the given date. The cached scalar exists only
// as a cheap sort key for list screens; occurrence data itself is always
// derived on demand. Returns the number of obligations updated.
func RefreshNextDueDates(ctx context.Context, storage service.Storage, asOf time.Time) (int, error) {
	obligations, err := storage.GetActiveRecurringObligations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load recurring obligations: %w", err)
	}

	updated := 0
	for i := range obligations {
		ob := &obligations[i]
		if err := ob.Recurrence.Validate(); err != nil {
			slog.Warn("skipping next-due refresh for invalid recurrence",
				"obligation_id", ob.ID,
				"error", err)
			continue
		}

		next, ok := recurrence.NextOccurrence(ob.Recurrence, asOf)
		value := &next
		if !ok {
			// Series exhausted: clear the cache so the obligation sorts last.
			value = nil
		}
		if err := storage.UpdateNextDueDate(ctx, ob.ID, value); err != nil {
			return updated, fmt.Errorf("failed to update next due date for obligation %d: %w", ob.ID, err)
		}
		updated++
	}
	return updated, nil
}
