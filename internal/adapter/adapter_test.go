package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
	"github.com/pennyworth-app/pennyworth/internal/storage"
	"github.com/pennyworth-app/pennyworth/internal/testutil"
)

func testWindow() model.Window {
	return model.NewWindow(
		model.Date(2025, time.June, 1),
		model.Date(2025, time.August, 31),
		model.Date(2025, time.June, 10),
	)
}

func setup(t *testing.T) (*storage.SQLiteStorage, service.NameResolver) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	return store, service.StorageResolver{Storage: store}
}

func TestRecurringAdapterProjectsOccurrences(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	categoryID, err := store.CreateCategory(ctx, "Housing")
	require.NoError(t, err)

	rent := &model.RecurringObligation{
		Title:      "Rent",
		CategoryID: &categoryID,
		Currency:   "USD",
		AmountType: model.AmountFixed,
		Amount:     1450,
		Lifecycle:  model.LifecycleActive,
		Recurrence: model.RecurrenceDefinition{
			Frequency:       model.FrequencyMonth,
			Interval:        1,
			StartDate:       model.Date(2025, time.January, 1),
			DayOfOccurrence: 1,
		},
	}
	require.NoError(t, store.CreateRecurringObligation(ctx, rent))

	adapter := NewRecurringAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3, "June, July, August 1sts")

	first := records[0]
	assert.Equal(t, model.OccurrenceID(rent.ID, model.Date(2025, time.June, 1)), first.ID)
	assert.Equal(t, model.SourceRecurring, first.SourceType)
	assert.Equal(t, rent.ID, first.SourceID)
	assert.Equal(t, "Rent", first.Title)
	assert.InDelta(t, 1450, first.Amount, 0.01)
	assert.Equal(t, model.StatusOverdue, first.Status, "June 1 is before the as-of date")
	assert.Equal(t, "Housing", first.CategoryName)
	assert.Equal(t, model.StatusUpcoming, records[1].Status)
}

func TestRecurringAdapterResolvesVariableAmounts(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	electricity := &model.RecurringObligation{
		Title:           "Electricity",
		Currency:        "USD",
		AmountType:      model.AmountVariable,
		Amount:          0,
		EstimatedAmount: 85,
		Lifecycle:       model.LifecycleActive,
		Recurrence: model.RecurrenceDefinition{
			Frequency:       model.FrequencyMonth,
			Interval:        1,
			StartDate:       model.Date(2025, time.January, 1),
			DayOfOccurrence: 15,
		},
	}
	require.NoError(t, store.CreateRecurringObligation(ctx, electricity))

	adapter := NewRecurringAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.InDelta(t, 85, records[0].Amount, 0.01)
	assert.Equal(t, "variable", records[0].Metadata["amount_type"])
}

func TestRecurringAdapterDegradesOnMissingCategory(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	missingID := int64(9999)
	obligation := &model.RecurringObligation{
		Title:      "Gym",
		CategoryID: &missingID,
		Currency:   "USD",
		AmountType: model.AmountFixed,
		Amount:     40,
		Lifecycle:  model.LifecycleActive,
		Recurrence: model.RecurrenceDefinition{
			Frequency:       model.FrequencyMonth,
			Interval:        1,
			StartDate:       model.Date(2025, time.January, 1),
			DayOfOccurrence: 5,
		},
	}
	require.NoError(t, store.CreateRecurringObligation(ctx, obligation))

	adapter := NewRecurringAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err, "a missing lookup must not fail the fetch")
	require.NotEmpty(t, records)
	assert.Empty(t, records[0].CategoryName)
}

func TestLiabilityAdapterUsesPersistedStatus(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	principal := 180.0
	interest := 70.0
	paid := &model.LiabilityScheduleEntry{
		Title:     "Car loan",
		Currency:  "USD",
		Sequence:  1,
		DueDate:   model.Date(2025, time.June, 5),
		Amount:    250,
		Status:    model.StatusPaid,
		Principal: &principal,
		Interest:  &interest,
	}
	require.NoError(t, store.CreateLiabilityEntry(ctx, paid))

	open := &model.LiabilityScheduleEntry{
		Title:       "Car loan",
		LiabilityID: paid.LiabilityID,
		Currency:    "USD",
		Sequence:    2,
		DueDate:     model.Date(2025, time.July, 5),
		Amount:      250,
	}
	require.NoError(t, store.CreateLiabilityEntry(ctx, open))

	adapter := NewLiabilityAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.StatusPaid, records[0].Status, "terminal status is sticky despite being past due")
	assert.InDelta(t, 180, records[0].Metadata["principal"].(float64), 0.01)
	assert.InDelta(t, 70, records[0].Metadata["interest"].(float64), 0.01)
	assert.Equal(t, 1, records[0].Metadata["sequence"])

	assert.Equal(t, model.StatusUpcoming, records[1].Status)
	_, hasPrincipal := records[1].Metadata["principal"]
	assert.False(t, hasPrincipal, "no stored breakdown on the open entry")
}

func TestLiabilityAdapterWindowsEntries(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	outside := &model.LiabilityScheduleEntry{
		Title:    "Car loan",
		Currency: "USD",
		Sequence: 1,
		DueDate:  model.Date(2025, time.December, 5),
		Amount:   250,
	}
	require.NoError(t, store.CreateLiabilityEntry(ctx, outside))

	adapter := NewLiabilityAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPaymentAdapter(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	accountID, err := store.CreateAccount(ctx, "Checking")
	require.NoError(t, err)

	payment := &model.ScheduledPayment{
		Title:       "Annual insurance premium",
		Description: "auto policy renewal",
		AccountID:   &accountID,
		Currency:    "USD",
		Amount:      620,
		DueDate:     model.Date(2025, time.July, 1),
	}
	require.NoError(t, store.CreateScheduledPayment(ctx, payment))

	adapter := NewPaymentAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, model.SourcePayment, record.SourceType)
	assert.Equal(t, "Annual insurance premium", record.Title)
	assert.Equal(t, model.StatusUpcoming, record.Status)
	assert.Equal(t, "Checking", record.AccountName)
	assert.Equal(t, model.Date(2025, time.July, 1), record.DueDate)
}

func TestGoalAdapterSynthesizesMonthlyContributions(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	targetDate := model.Date(2025, time.October, 10)
	goal := &model.Goal{
		Name:         "Emergency fund",
		Currency:     "USD",
		TargetAmount: 5000,
		SavedAmount:  1000,
		TargetDate:   &targetDate,
	}
	require.NoError(t, store.CreateGoal(ctx, goal))

	adapter := NewGoalAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2, "July and August contributions fall inside the window")

	// 4 months between as-of (June 10) and target (October 10): 1000/month.
	for _, record := range records {
		assert.Equal(t, model.SourceGoal, record.SourceType)
		assert.InDelta(t, 1000, record.Amount, 0.01)
		assert.Equal(t, model.StatusUpcoming, record.Status)
	}
}

func TestGoalAdapterClampsMonthEndAsOf(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	targetDate := model.Date(2025, time.May, 31)
	goal := &model.Goal{
		Name:         "New laptop",
		Currency:     "USD",
		TargetAmount: 4000,
		TargetDate:   &targetDate,
	}
	require.NoError(t, store.CreateGoal(ctx, goal))

	window := model.NewWindow(
		model.Date(2025, time.January, 1),
		model.Date(2025, time.June, 30),
		model.Date(2025, time.January, 31),
	)

	adapter := NewGoalAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, window, service.ObligationFilter{})
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Stepping from Jan 31 clamps to February's last day instead of rolling
	// into March and doubling up there.
	assert.Equal(t, model.Date(2025, time.February, 28), records[0].DueDate)
	assert.Equal(t, model.Date(2025, time.March, 31), records[1].DueDate)
	assert.Equal(t, model.Date(2025, time.April, 30), records[2].DueDate)
	assert.Equal(t, model.Date(2025, time.May, 31), records[3].DueDate)
	for _, record := range records {
		assert.InDelta(t, 1000, record.Amount, 0.01)
	}
}

func TestAdapterFetchFailuresAreTagged(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)
	require.NoError(t, store.Close())

	adapters := []service.Adapter{
		NewRecurringAdapter(store, resolver),
		NewLiabilityAdapter(store, resolver),
		NewPaymentAdapter(store, resolver),
		NewGoalAdapter(store, resolver),
	}
	for _, a := range adapters {
		_, err := a.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
		assert.ErrorIs(t, err, common.ErrAdapterFetch, "source %s", a.SourceType())
	}
}

func TestGoalAdapterSkipsIneligibleGoals(t *testing.T) {
	ctx := context.Background()
	store, resolver := setup(t)

	// No target date.
	require.NoError(t, store.CreateGoal(ctx, &model.Goal{
		Name: "Someday fund", Currency: "USD", TargetAmount: 1000,
	}))

	// Already fully funded.
	funded := model.Date(2025, time.December, 1)
	require.NoError(t, store.CreateGoal(ctx, &model.Goal{
		Name: "Funded", Currency: "USD", TargetAmount: 1000, SavedAmount: 1000, TargetDate: &funded,
	}))

	// Target date already past.
	past := model.Date(2025, time.January, 1)
	require.NoError(t, store.CreateGoal(ctx, &model.Goal{
		Name: "Missed", Currency: "USD", TargetAmount: 1000, TargetDate: &past,
	}))

	adapter := NewGoalAdapter(store, resolver)
	records, err := adapter.FetchOccurrencesInWindow(ctx, testWindow(), service.ObligationFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}
