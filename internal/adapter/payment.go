package adapter

import (
	"context"
	"fmt"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// PaymentAdapter surfaces one-off scheduled payments: a single due date and
// amount per source, no recurrence.
type PaymentAdapter struct {
	storage  service.Storage
	resolver service.NameResolver
}

// NewPaymentAdapter creates an adapter over the scheduled payment source.
func NewPaymentAdapter(storage service.Storage, resolver service.NameResolver) *PaymentAdapter {
	return &PaymentAdapter{storage: storage, resolver: resolver}
}

// SourceType identifies this adapter's source.
func (a *PaymentAdapter) SourceType() model.SourceType {
	return model.SourcePayment
}

// FetchOccurrencesInWindow returns one record per payment due inside the
// window, classified with its persisted status.
func (a *PaymentAdapter) FetchOccurrencesInWindow(ctx context.Context, window model.Window, _ service.ObligationFilter) ([]model.UnifiedObligationRecord, error) {
	payments, err := a.storage.GetScheduledPaymentsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled payments: %w", common.ErrAdapterFetch, err)
	}

	records := make([]model.UnifiedObligationRecord, 0, len(payments))
	for _, payment := range payments {
		record := model.UnifiedObligationRecord{
			ID:          fmt.Sprintf("payment_%d", payment.ID),
			SourceType:  model.SourcePayment,
			SourceID:    payment.ID,
			Title:       payment.Title,
			Description: payment.Description,
			Amount:      payment.Amount,
			Currency:    payment.Currency,
			DueDate:     model.DateOf(payment.DueDate),
			Status:      model.CalculateStatus(payment.DueDate, window.AsOf, payment.Status),
		}
		resolveNames(ctx, a.resolver, &record, payment.CategoryID, payment.AccountID)
		records = append(records, record)
	}
	return records, nil
}
