package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/recurrence"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// RecurringAdapter projects recurring obligations into concrete occurrences
// using the recurrence engine. Occurrences are not rows, so record identity
// is derived from the source ID and the occurrence date.
type RecurringAdapter struct {
	storage  service.Storage
	resolver service.NameResolver
}

// NewRecurringAdapter creates an adapter over the recurring obligation source.
func NewRecurringAdapter(storage service.Storage, resolver service.NameResolver) *RecurringAdapter {
	return &RecurringAdapter{storage: storage, resolver: resolver}
}

// SourceType identifies this adapter's source.
func (a *RecurringAdapter) SourceType() model.SourceType {
	return model.SourceRecurring
}

// FetchOccurrencesInWindow generates one unified record per projected
// occurrence of every active recurring obligation. Obligations with
// malformed recurrence rules are skipped with a diagnostic rather than
// aborting the batch.
func (a *RecurringAdapter) FetchOccurrencesInWindow(ctx context.Context, window model.Window, _ service.ObligationFilter) ([]model.UnifiedObligationRecord, error) {
	obligations, err := a.storage.GetActiveRecurringObligations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: recurring obligations: %w", common.ErrAdapterFetch, err)
	}

	var records []model.UnifiedObligationRecord
	for i := range obligations {
		ob := &obligations[i]

		occurrences, err := recurrence.Schedule(ob.Recurrence, window)
		if err != nil {
			slog.Warn("skipping recurring obligation with invalid recurrence",
				"obligation_id", ob.ID,
				"title", ob.Title,
				"error", err)
			continue
		}

		amount := ob.ResolveAmount()
		for _, occ := range occurrences {
			record := model.UnifiedObligationRecord{
				ID:          model.OccurrenceID(ob.ID, occ.Date),
				SourceType:  model.SourceRecurring,
				SourceID:    ob.ID,
				Title:       ob.Title,
				Description: ob.Description,
				Amount:      amount,
				Currency:    ob.Currency,
				DueDate:     occ.Date,
				Status:      occ.Status,
				Metadata: map[string]any{
					"frequency":   string(ob.Recurrence.Frequency),
					"amount_type": string(ob.AmountType),
				},
			}
			resolveNames(ctx, a.resolver, &record, ob.CategoryID, ob.AccountID)
			records = append(records, record)
		}
	}
	return records, nil
}
