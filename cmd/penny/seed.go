package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennyworth-app/pennyworth/internal/cli"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/storage"
)

// seedCmd populates a local database with demo data so the bills view has
// something to show before real sources are wired up.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo obligations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := seedDemoData(ctx, store, cfg.DefaultCurrency); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("seeded demo obligations"))
			return nil
		},
	}
}

func seedDemoData(ctx context.Context, store *storage.SQLiteStorage, currency string) error {
	utilitiesID, err := store.CreateCategory(ctx, "Utilities")
	if err != nil {
		return err
	}
	checkingID, err := store.CreateAccount(ctx, "Checking")
	if err != nil {
		return err
	}

	today := model.DateOf(time.Now())

	rent := &model.RecurringObligation{
		Title:      "Rent",
		CategoryID: &utilitiesID,
		AccountID:  &checkingID,
		Currency:   currency,
		AmountType: model.AmountFixed,
		Amount:     1450,
		Lifecycle:  model.LifecycleActive,
		Recurrence: model.RecurrenceDefinition{
			Frequency:       model.FrequencyMonth,
			Interval:        1,
			StartDate:       today.AddDate(-1, 0, 0),
			DayOfOccurrence: 1,
		},
	}
	if err := store.CreateRecurringObligation(ctx, rent); err != nil {
		return err
	}

	electricity := &model.RecurringObligation{
		Title:           "Electricity",
		CategoryID:      &utilitiesID,
		Currency:        currency,
		AmountType:      model.AmountVariable,
		EstimatedAmount: 85,
		Lifecycle:       model.LifecycleActive,
		Recurrence: model.RecurrenceDefinition{
			Frequency:       model.FrequencyMonth,
			Interval:        1,
			StartDate:       today.AddDate(0, -6, 0),
			DayOfOccurrence: 15,
		},
	}
	if err := store.CreateRecurringObligation(ctx, electricity); err != nil {
		return err
	}

	principal := 180.0
	interest := 70.0
	for i := 0; i < 3; i++ {
		entry := &model.LiabilityScheduleEntry{
			Title:     "Car loan",
			Currency:  currency,
			Sequence:  i + 1,
			DueDate:   today.AddDate(0, i, 5),
			Amount:    250,
			Principal: &principal,
			Interest:  &interest,
		}
		if err := store.CreateLiabilityEntry(ctx, entry); err != nil {
			return err
		}
	}

	payment := &model.ScheduledPayment{
		Title:    "Annual insurance premium",
		Currency: currency,
		Amount:   620,
		DueDate:  today.AddDate(0, 2, 0),
	}
	if err := store.CreateScheduledPayment(ctx, payment); err != nil {
		return err
	}

	targetDate := today.AddDate(0, 10, 0)
	goal := &model.Goal{
		Name:         "Emergency fund",
		Currency:     currency,
		TargetAmount: 5000,
		SavedAmount:  1200,
		TargetDate:   &targetDate,
	}
	return store.CreateGoal(ctx, goal)
}
