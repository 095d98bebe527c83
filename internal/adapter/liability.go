package adapter

import (
	"context"
	"fmt"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// LiabilityAdapter surfaces pre-materialized liability schedule entries.
// Rows already exist 1:1 with occurrences, so the adapter only filters to
// the window and classifies each entry with its persisted status.
type LiabilityAdapter struct {
	storage  service.Storage
	resolver service.NameResolver
}

// NewLiabilityAdapter creates an adapter over the liability schedule source.
func NewLiabilityAdapter(storage service.Storage, resolver service.NameResolver) *LiabilityAdapter {
	return &LiabilityAdapter{storage: storage, resolver: resolver}
}

// SourceType identifies this adapter's source.
func (a *LiabilityAdapter) SourceType() model.SourceType {
	return model.SourceLiability
}

// FetchOccurrencesInWindow returns one record per schedule entry due inside
// the window. Any stored principal/interest breakdown travels along as
// metadata for the liability detail screens.
func (a *LiabilityAdapter) FetchOccurrencesInWindow(ctx context.Context, window model.Window, _ service.ObligationFilter) ([]model.UnifiedObligationRecord, error) {
	entries, err := a.storage.GetLiabilityEntriesInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("%w: liability schedule entries: %w", common.ErrAdapterFetch, err)
	}

	records := make([]model.UnifiedObligationRecord, 0, len(entries))
	for _, entry := range entries {
		metadata := map[string]any{
			"liability_id": entry.LiabilityID,
			"sequence":     entry.Sequence,
		}
		if entry.Principal != nil {
			metadata["principal"] = *entry.Principal
		}
		if entry.Interest != nil {
			metadata["interest"] = *entry.Interest
		}

		records = append(records, model.UnifiedObligationRecord{
			ID:         fmt.Sprintf("liability_%d", entry.ID),
			SourceType: model.SourceLiability,
			SourceID:   entry.ID,
			Title:      entry.Title,
			Amount:     entry.Amount,
			Currency:   entry.Currency,
			DueDate:    model.DateOf(entry.DueDate),
			Status:     model.CalculateStatus(entry.DueDate, window.AsOf, entry.Status),
			Metadata:   metadata,
		})
	}
	return records, nil
}
