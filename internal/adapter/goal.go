package adapter

import (
	"context"
	"fmt"

	"github.com/pennyworth-app/pennyworth/internal/common"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

// GoalAdapter synthesizes contribution targets from savings goals. Nothing
// is stored: the remaining amount is spread evenly across the monthly steps
// between the as-of date and the goal's target date.
type GoalAdapter struct {
	storage  service.Storage
	resolver service.NameResolver
}

// NewGoalAdapter creates an adapter over the goal source.
func NewGoalAdapter(storage service.Storage, resolver service.NameResolver) *GoalAdapter {
	return &GoalAdapter{storage: storage, resolver: resolver}
}

// SourceType identifies this adapter's source.
func (a *GoalAdapter) SourceType() model.SourceType {
	return model.SourceGoal
}

// FetchOccurrencesInWindow emits one monthly contribution record per goal
// from the as-of date to the target date, windowed. Goals without a target
// date, without a remaining amount, or with a target date already past are
// skipped.
func (a *GoalAdapter) FetchOccurrencesInWindow(ctx context.Context, window model.Window, _ service.ObligationFilter) ([]model.UnifiedObligationRecord, error) {
	goals, err := a.storage.GetGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: goals: %w", common.ErrAdapterFetch, err)
	}

	var records []model.UnifiedObligationRecord
	for _, goal := range goals {
		remaining := goal.RemainingAmount()
		if goal.TargetDate == nil || remaining <= 0 {
			continue
		}
		target := model.DateOf(*goal.TargetDate)
		if target.Before(window.AsOf) {
			continue
		}

		monthsRemaining := model.MonthsBetween(window.AsOf, target)
		if monthsRemaining < 1 {
			monthsRemaining = 1
		}
		contribution := remaining / float64(monthsRemaining)

		for step := 0; step < monthsRemaining; step++ {
			// Clamped month stepping: an as-of on the 31st lands on the
			// 28th/29th/30th in shorter months instead of rolling over.
			date := model.AddMonthsClamped(window.AsOf, step+1)
			if date.After(target) {
				date = target
			}
			if !window.Contains(date) {
				continue
			}
			records = append(records, model.UnifiedObligationRecord{
				ID:         model.OccurrenceID(goal.ID, date),
				SourceType: model.SourceGoal,
				SourceID:   goal.ID,
				Title:      fmt.Sprintf("Contribution: %s", goal.Name),
				Amount:     contribution,
				Currency:   goal.Currency,
				DueDate:    date,
				Status:     model.CalculateStatus(date, window.AsOf, ""),
				Metadata: map[string]any{
					"goal_name":        goal.Name,
					"remaining_amount": remaining,
					"months_remaining": monthsRemaining,
					"cycle":            step + 1,
				},
			})
		}
	}
	return records, nil
}
