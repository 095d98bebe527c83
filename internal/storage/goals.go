package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// GetGoals returns every savings goal. The goal adapter decides which ones
// still synthesize contribution targets.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, currency, target_amount, saved_amount, target_date
		FROM goals
		ORDER BY target_date IS NULL, target_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var (
			goal       model.Goal
			targetDate sql.NullTime
		)
		if err := rows.Scan(
			&goal.ID,
			&goal.Name,
			&goal.Currency,
			&goal.TargetAmount,
			&goal.SavedAmount,
			&targetDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if targetDate.Valid {
			target := model.DateOf(targetDate.Time)
			goal.TargetDate = &target
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// CreateGoal inserts a savings goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	var targetDate any
	if goal.TargetDate != nil {
		targetDate = model.DateOf(*goal.TargetDate)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (name, currency, target_amount, saved_amount, target_date)
		VALUES (?, ?, ?, ?, ?)
	`,
		goal.Name,
		goal.Currency,
		goal.TargetAmount,
		goal.SavedAmount,
		targetDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	goal.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted goal id: %w", err)
	}
	return nil
}
