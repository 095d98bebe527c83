package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// stubAdapter returns canned records or a canned error.
type stubAdapter struct {
	err        error
	records    []model.UnifiedObligationRecord
	sourceType model.SourceType
}

func (s *stubAdapter) SourceType() model.SourceType {
	return s.sourceType
}

func (s *stubAdapter) FetchOccurrencesInWindow(_ context.Context, _ model.Window, _ service.ObligationFilter) ([]model.UnifiedObligationRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testWindow() model.Window {
	return model.NewWindow(
		model.Date(2025, time.June, 1),
		model.Date(2025, time.June, 30),
		model.Date(2025, time.June, 10),
	)
}

func record(sourceType model.SourceType, sourceID int64, title string, due time.Time, status model.Status, amount float64) model.UnifiedObligationRecord {
	return model.UnifiedObligationRecord{
		ID:         model.OccurrenceID(sourceID, due),
		SourceType: sourceType,
		SourceID:   sourceID,
		Title:      title,
		Amount:     amount,
		Currency:   "USD",
		DueDate:    due,
		Status:     status,
	}
}

func TestFetchAllUpcomingMergesAndSorts(t *testing.T) {
	june5 := model.Date(2025, time.June, 5)
	june15 := model.Date(2025, time.June, 15)

	aggregator := New(
		&stubAdapter{
			sourceType: model.SourceRecurring,
			records: []model.UnifiedObligationRecord{
				record(model.SourceRecurring, 2, "Rent", june15, model.StatusUpcoming, 1450),
				record(model.SourceRecurring, 1, "Electricity", june5, model.StatusOverdue, 85),
			},
		},
		&stubAdapter{
			sourceType: model.SourceLiability,
			records: []model.UnifiedObligationRecord{
				record(model.SourceLiability, 9, "Car loan", june15, model.StatusUpcoming, 250),
			},
		},
	)

	result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.False(t, result.Partial)

	// Ascending due date; liability sorts before recurring on the tie.
	assert.Equal(t, "Electricity", result.Records[0].Title)
	assert.Equal(t, "Car loan", result.Records[1].Title)
	assert.Equal(t, "Rent", result.Records[2].Title)

	// DaysUntil is computed against the window's as-of date.
	assert.Equal(t, -5, result.Records[0].DaysUntil)
	assert.Equal(t, 5, result.Records[1].DaysUntil)
}

func TestFetchAllUpcomingDeterministicTiebreak(t *testing.T) {
	due := model.Date(2025, time.June, 15)
	adapters := []service.Adapter{
		&stubAdapter{
			sourceType: model.SourceRecurring,
			records: []model.UnifiedObligationRecord{
				record(model.SourceRecurring, 7, "B", due, model.StatusUpcoming, 10),
				record(model.SourceRecurring, 3, "A", due, model.StatusUpcoming, 10),
			},
		},
		&stubAdapter{
			sourceType: model.SourcePayment,
			records: []model.UnifiedObligationRecord{
				record(model.SourcePayment, 5, "C", due, model.StatusUpcoming, 10),
			},
		},
	}

	var firstOrder []string
	for i := 0; i < 5; i++ {
		result, err := New(adapters...).FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{})
		require.NoError(t, err)

		order := make([]string, len(result.Records))
		for j, r := range result.Records {
			order[j] = r.ID
		}
		if firstOrder == nil {
			firstOrder = order
			// (source_type, source_id): payment before recurring, 3 before 7.
			assert.Equal(t, int64(5), result.Records[0].SourceID)
			assert.Equal(t, int64(3), result.Records[1].SourceID)
			assert.Equal(t, int64(7), result.Records[2].SourceID)
			continue
		}
		assert.Equal(t, firstOrder, order, "ordering changed between identical calls")
	}
}

func TestFetchAllUpcomingPartialFailure(t *testing.T) {
	due := model.Date(2025, time.June, 20)
	aggregator := New(
		&stubAdapter{
			sourceType: model.SourceRecurring,
			records: []model.UnifiedObligationRecord{
				record(model.SourceRecurring, 1, "Rent", due, model.StatusUpcoming, 1450),
			},
		},
		&stubAdapter{
			sourceType: model.SourceLiability,
			err:        errors.New("liability source unavailable"),
		},
		&stubAdapter{
			sourceType: model.SourcePayment,
			records: []model.UnifiedObligationRecord{
				record(model.SourcePayment, 2, "Insurance", due, model.StatusUpcoming, 620),
			},
		},
		&stubAdapter{
			sourceType: model.SourceGoal,
			records: []model.UnifiedObligationRecord{
				record(model.SourceGoal, 3, "Emergency fund", due, model.StatusUpcoming, 380),
			},
		},
	)

	result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{})
	require.NoError(t, err)

	assert.True(t, result.Partial)
	assert.Equal(t, []model.SourceType{model.SourceLiability}, result.FailedSources)
	assert.Len(t, result.Records, 3, "other sources still surface")
}

func TestFetchAllUpcomingFilters(t *testing.T) {
	due := model.Date(2025, time.June, 20)

	paid := record(model.SourceRecurring, 1, "Rent", due, model.StatusPaid, 1450)
	cancelled := record(model.SourcePayment, 2, "Old plan", due, model.StatusCancelled, 30)
	upcoming := record(model.SourcePayment, 3, "Insurance premium", due, model.StatusUpcoming, 620)
	upcoming.Description = "annual auto policy"
	upcoming.CategoryName = "Insurance"
	overdue := record(model.SourceLiability, 4, "Car loan", model.Date(2025, time.June, 1), model.StatusOverdue, 250)

	aggregator := New(&stubAdapter{
		sourceType: model.SourceRecurring,
		records:    []model.UnifiedObligationRecord{paid, cancelled, upcoming, overdue},
	})

	t.Run("paid and cancelled excluded by default", func(t *testing.T) {
		result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{})
		require.NoError(t, err)
		assert.Len(t, result.Records, 2)
	})

	t.Run("terminal records included on opt-in", func(t *testing.T) {
		result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{
			IncludePaid:      true,
			IncludeCancelled: true,
		})
		require.NoError(t, err)
		assert.Len(t, result.Records, 4)
	})

	t.Run("status set", func(t *testing.T) {
		result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{
			Statuses: []model.Status{model.StatusOverdue},
		})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "Car loan", result.Records[0].Title)
	})

	t.Run("category match is case-insensitive", func(t *testing.T) {
		result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{
			Category: "insurance",
		})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "Insurance premium", result.Records[0].Title)
	})

	t.Run("free-text matches description", func(t *testing.T) {
		result, err := aggregator.FetchAllUpcoming(context.Background(), testWindow(), service.ObligationFilter{
			Search: "auto policy",
		})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "Insurance premium", result.Records[0].Title)
	})
}

func TestFetchAllUpcomingRejectsInvalidWindow(t *testing.T) {
	aggregator := New()
	_, err := aggregator.FetchAllUpcoming(context.Background(), model.Window{}, service.ObligationFilter{})
	assert.Error(t, err)
}

func TestFetchAllUpcomingCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	aggregator := New(&stubAdapter{sourceType: model.SourceRecurring})
	_, err := aggregator.FetchAllUpcoming(ctx, testWindow(), service.ObligationFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetSummary(t *testing.T) {
	june5 := model.Date(2025, time.June, 5)
	june20 := model.Date(2025, time.June, 20)

	aggregator := New(
		&stubAdapter{
			sourceType: model.SourceRecurring,
			records: []model.UnifiedObligationRecord{
				record(model.SourceRecurring, 1, "Rent", june20, model.StatusUpcoming, 1450),
				record(model.SourceRecurring, 2, "Electricity", june5, model.StatusOverdue, 85),
				record(model.SourceRecurring, 3, "Water", june5, model.StatusPaid, 40),
			},
		},
		&stubAdapter{
			sourceType: model.SourceGoal,
			records: []model.UnifiedObligationRecord{
				record(model.SourceGoal, 4, "Emergency fund", june20, model.StatusUpcoming, 380),
			},
		},
	)

	summary, err := aggregator.GetSummary(context.Background(), testWindow(), service.ObligationFilter{})
	require.NoError(t, err)

	// Paid record excluded by default.
	assert.Equal(t, 3, summary.Total)
	assert.InDelta(t, 1915, summary.TotalAmount, 0.01)
	assert.Equal(t, 2, summary.CountsByStatus[model.StatusUpcoming])
	assert.Equal(t, 1, summary.CountsByStatus[model.StatusOverdue])
	assert.InDelta(t, 1535, summary.AmountsBySource[model.SourceRecurring], 0.01)
	assert.InDelta(t, 380, summary.AmountsBySource[model.SourceGoal], 0.01)
}
